package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListResourcePagination(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/billing_plans/", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("skip"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"id": 51, "name": "pro"}]`))
	})

	items, err := client.ListResource("billing_plans", nil, 50, 25)
	require.NoError(t, err)
	require.Len(t, items, 1)
	id, ok := items[0].ID()
	require.True(t, ok)
	assert.Equal(t, int64(51), id)
	assert.Equal(t, "pro", items[0].String("name"))
}

// Paging through a collection 3 records at a time yields the same
// sequence as fetching it in one request.
func TestListResourcePagesConcatenate(t *testing.T) {
	all := make([]Instance, 10)
	for i := range all {
		all[i] = Instance{"id": i + 1, "name": fmt.Sprintf("plan-%d", i+1)}
	}
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		end := skip + limit
		if skip > len(all) {
			skip = len(all)
		}
		if end > len(all) {
			end = len(all)
		}
		json.NewEncoder(w).Encode(all[skip:end])
	})

	var paged []Instance
	for skip := 0; ; skip += 3 {
		page, err := client.ListResource("billing_plans", nil, skip, 3)
		require.NoError(t, err)
		paged = append(paged, page...)
		if len(page) < 3 {
			break
		}
	}

	whole, err := client.ListResource("billing_plans", nil, 0, 100)
	require.NoError(t, err)
	require.Len(t, paged, len(whole))
	for i := range whole {
		assert.Equal(t, whole[i].String("id"), paged[i].String("id"))
	}
}

func TestListResourceFilters(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		w.Write([]byte(`[]`))
	})

	_, err := client.ListResource("orders", QueryParams{"user_id": "7"}, 0, 25)
	require.NoError(t, err)
}

func TestCreateResource(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.kz", body["email"])
		w.Write([]byte(`{"id": 9, "email": "a@b.kz"}`))
	})

	created, err := client.CreateResource("users", Instance{"email": "a@b.kz"})
	require.NoError(t, err)
	id, _ := created.ID()
	assert.Equal(t, int64(9), id)
}

func TestUpdateResourceIsPartial(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/9", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body, 1)
		assert.Equal(t, "+77010000000", body["telegram_id"])
		w.Write([]byte(`{"id": 9, "email": "a@b.kz", "telegram_id": "+77010000000"}`))
	})

	updated, err := client.UpdateResource("users", 9, Instance{"telegram_id": "+77010000000"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.kz", updated.String("email"))
}

func TestDeleteResourceGoneRecord(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"not found"}`))
	})

	err := client.DeleteResource("users", 404)
	assert.True(t, IsNotFound(err))
}

func TestInstanceAccessors(t *testing.T) {
	in := Instance{"id": float64(3), "disable": true, "price": float64(1500), "note": nil}

	id, ok := in.ID()
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
	assert.True(t, in.Bool("disable"))
	assert.Equal(t, "1500", in.String("price"))
	assert.Equal(t, "", in.String("note"))
	assert.Equal(t, "", in.String("missing"))

	clone := in.Clone()
	clone["id"] = float64(4)
	idAgain, _ := in.ID()
	assert.Equal(t, int64(3), idAgain)

	merged := in.Merge(Instance{"disable": false})
	assert.False(t, merged.Bool("disable"))
	assert.True(t, in.Bool("disable"))
}
