package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSchemaFixture = `{
	"title": "User",
	"type": "object",
	"properties": {
		"email": {"type": "string", "title": "Email"},
		"kaspi_login": {"type": "string", "title": "Kaspi login", "group": "kaspi"},
		"kaspi_password": {"type": "string", "title": "Kaspi password", "group": "kaspi"},
		"disable": {"type": "boolean", "title": "Disabled", "default": false},
		"limit_messages_per_day": {"type": "integer", "title": "Daily limit"},
		"state_status": {"type": "string", "enum": ["new_order", "on_delivery", "completed"]},
		"green_api_data": {
			"type": "array",
			"title": "WhatsApp instances",
			"items": {
				"type": "object",
				"properties": {
					"id_instance": {"type": "string"},
					"api_token_instance": {"type": "string"},
					"phone": {"type": "string"}
				}
			}
		}
	},
	"required": ["email", "kaspi_login"]
}`

func TestGetSchemaPreservesDeclarationOrder(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/schema", r.URL.Path)
		w.Write([]byte(userSchemaFixture))
	})

	schema, err := client.GetSchema("users")
	require.NoError(t, err)
	assert.Equal(t, "User", schema.Title)
	assert.Equal(t, []string{
		"email", "kaspi_login", "kaspi_password", "disable",
		"limit_messages_per_day", "state_status", "green_api_data",
	}, schema.Order)
}

func TestGetSchemaNestedItems(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userSchemaFixture))
	})

	schema, err := client.GetSchema("users")
	require.NoError(t, err)

	arr := schema.Properties["green_api_data"]
	require.NotNil(t, arr)
	assert.Equal(t, "array", arr.Type)
	require.NotNil(t, arr.Items)
	assert.Equal(t, []string{"id_instance", "api_token_instance", "phone"}, arr.Items.Order)
}

func TestSchemaRequiredAndGroups(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userSchemaFixture))
	})

	schema, err := client.GetSchema("users")
	require.NoError(t, err)
	assert.True(t, schema.IsRequired("email"))
	assert.True(t, schema.IsRequired("kaspi_login"))
	assert.False(t, schema.IsRequired("disable"))
	assert.Equal(t, "kaspi", schema.Properties["kaspi_login"].Group)
	assert.Equal(t, "", schema.Properties["email"].Group)
}

func TestSchemaEnumStrings(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userSchemaFixture))
	})

	schema, err := client.GetSchema("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"new_order", "on_delivery", "completed"},
		schema.Properties["state_status"].EnumStrings())
}

func TestEmptySchemaIsValid(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "Empty", "type": "object", "properties": {}}`))
	})

	schema, err := client.GetSchema("empty")
	require.NoError(t, err)
	assert.True(t, schema.Empty())
	assert.Empty(t, schema.Order)
}
