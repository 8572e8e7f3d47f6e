package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrdersWithFilters(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		assert.Equal(t, "3", r.URL.Query().Get("group_id"))
		w.Write([]byte(`[{"id": 1, "code": "409123456", "status": "KASPI_DELIVERY", "is_sended": true}]`))
	})

	orders, err := client.ListOrders(OrderFilter{UserID: 7, GroupID: 3}, 0, 25)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "409123456", orders[0].Code)
	assert.True(t, orders[0].IsSended)
}

func TestListOrdersOmitsZeroFilters(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("user_id"))
		assert.False(t, r.URL.Query().Has("group_id"))
		w.Write([]byte(`[]`))
	})

	_, err := client.ListOrders(OrderFilter{}, 0, 25)
	require.NoError(t, err)
}

func TestOrdersByCode(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/code/409123456", r.URL.Path)
		w.Write([]byte(`[{"id": 1, "code": "409123456", "customer": {"first_name": "Aida", "phone": "+77010000000"}}]`))
	})

	orders, err := client.OrdersByCode("409123456", 0, 25)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Customer)
	assert.Equal(t, "Aida", orders[0].Customer.FirstName)
}

func TestSendOrdersGroup(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders_groups/3/send", r.URL.Path)
		w.Write([]byte(`"send-task-3"`))
	})

	taskID, err := client.SendOrdersGroup(3)
	require.NoError(t, err)
	assert.Equal(t, "send-task-3", taskID)
}

func TestCreateTemplateNestedRoute(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/7/templates/", r.URL.Path)
		w.Write([]byte(`{"id": 11, "user_id": 7, "state_status": "on_delivery", "template": "hello {{name}}"}`))
	})

	created, err := client.CreateTemplate(7, Instance{
		"state_status": "on_delivery",
		"template":     "hello {{name}}",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello {{name}}", created.String("template"))
}

func TestStats(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/7/stat/orders":
			w.Write([]byte(`[{"date": "2026-08-01", "count": 4, "price": 52000}]`))
		case "/users/7/stat/avg_price":
			w.Write([]byte(`{"avg": 13000}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	buckets, err := client.OrdersCountPriceStat(7)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, 4, buckets[0].Count)

	avg, err := client.AvgPriceStat(7)
	require.NoError(t, err)
	assert.Equal(t, float64(13000), avg.Avg)
}
