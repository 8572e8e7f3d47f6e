package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListClients(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("skip"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			{"id": 1, "email": "shop@kaspi.kz", "disable": false, "count_messages_sent": 12},
			{"id": 2, "email": "store@kaspi.kz", "disable": true}
		]`))
	})

	users, err := client.ListClients(0, 25)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "shop@kaspi.kz", users[0].Email)
	assert.Equal(t, 12, users[0].CountMessagesSent)
	assert.True(t, users[1].Disable)
}

func TestSetClientDisabledSendsOnlyDisable(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/5", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"disable": true}, body)
		w.Write([]byte(`{"id": 5, "disable": true}`))
	})

	user, err := client.SetClientDisabled(5, true)
	require.NoError(t, err)
	assert.True(t, user.Disable)
}

func TestBindWhatsappReturnsTaskID(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/5/bind_whatsapp", r.URL.Path)
		w.Write([]byte(`"d9a7c1f2-task"`))
	})

	taskID, err := client.BindWhatsapp(5)
	require.NoError(t, err)
	assert.Equal(t, "d9a7c1f2-task", taskID)
}

func TestWhatsappCodeAndQR(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		switch r.URL.Path {
		case "/users/5/whatsapp_code":
			w.Write([]byte(`"ABCD-1234"`))
		case "/users/5/whatsapp_qr":
			w.Write([]byte(`"base64qrpayload=="`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	code, err := client.WhatsappCode(5)
	require.NoError(t, err)
	assert.Equal(t, "ABCD-1234", code)

	qr, err := client.WhatsappQR(5)
	require.NoError(t, err)
	assert.Equal(t, "base64qrpayload==", qr)
}

func TestGreenAPIDataDecoding(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 5,
			"email": "shop@kaspi.kz",
			"green_api_data": [
				{"id_instance": "1101", "api_token_instance": "tkn", "phone": "+77010000000"}
			]
		}`))
	})

	user, err := client.GetClient(5)
	require.NoError(t, err)
	require.Len(t, user.GreenAPIData, 1)
	assert.Equal(t, "1101", user.GreenAPIData[0].IDInstance)
	assert.Equal(t, "+77010000000", user.GreenAPIData[0].Phone)
}
