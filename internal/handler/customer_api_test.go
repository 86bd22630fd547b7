package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/customer-desk/internal/handler"
)

func doJSON(t *testing.T, client *http.Client, method, url string, body any, dst any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func TestCustomerAPI_CRUD(t *testing.T) {
	srv, _ := newTestServer(t)
	client := loggedInClient(t, srv)
	base := srv.URL + "/api/customers"

	var created handler.ResultDTO
	status := doJSON(t, client, http.MethodPost, base, handler.CustomerRequest{
		NIK: "A-1", Name: "Ani", Born: "1995-05-05", Active: 1, Salary: 3_000_000,
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, created.Success)
	assert.Equal(t, "Customer saved.", created.Message)
	require.NotNil(t, created.Customer)
	require.NotNil(t, created.Customer.Born)
	assert.Equal(t, "1995-05-05", *created.Customer.Born)
	id := strconv.FormatInt(created.Customer.ID, 10)

	var got struct {
		Customer handler.CustomerDTO `json:"customer"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodGet, base+"/"+id, nil, &got))
	assert.Equal(t, "Ani", got.Customer.Name)

	var dup handler.ResultDTO
	status = doJSON(t, client, http.MethodPost, base, handler.CustomerRequest{NIK: "A-1", Name: "Other"}, &dup)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, dup.Success)

	var updated handler.ResultDTO
	status = doJSON(t, client, http.MethodPut, base+"/"+id, handler.CustomerRequest{NIK: "A-1", Name: "Ani Updated"}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ani Updated", updated.Customer.Name)
	assert.Nil(t, updated.Customer.Born)
	assert.Zero(t, updated.Customer.Active)

	var deleted handler.ResultDTO
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodDelete, base+"/"+id, nil, &deleted))
	assert.True(t, deleted.Success)
	assert.Equal(t, "Customer deleted.", deleted.Message)

	var missing handler.ResultDTO
	assert.Equal(t, http.StatusNotFound, doJSON(t, client, http.MethodDelete, base+"/"+id, nil, &missing))
	assert.False(t, missing.Success)
	assert.Equal(t, http.StatusNotFound, doJSON(t, client, http.MethodGet, base+"/"+id, nil, nil))
}

func TestCustomerAPI_Validation(t *testing.T) {
	srv, _ := newTestServer(t)
	client := loggedInClient(t, srv)
	base := srv.URL + "/api/customers"

	tests := []struct {
		name    string
		req     handler.CustomerRequest
		wantMsg string
	}{
		{"missing name", handler.CustomerRequest{NIK: "1"}, "NIK and name are required"},
		{"bad born", handler.CustomerRequest{NIK: "1", Name: "A", Born: "05/05/1995"}, "born must be a date in YYYY-MM-DD format"},
		{"salary too high", handler.CustomerRequest{NIK: "1", Name: "A", Salary: 1_000_000_000}, "salary must be between 0 and 999999999"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var res handler.ResultDTO
			status := doJSON(t, client, http.MethodPost, base, tc.req, &res)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
			assert.False(t, res.Success)
			assert.Equal(t, tc.wantMsg, res.Message)
		})
	}

	assert.Equal(t, http.StatusBadRequest, doJSON(t, client, http.MethodGet, base+"/abc", nil, nil))
}

func TestCustomerAPI_RejectsMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)
	client := loggedInClient(t, srv)

	for name, body := range map[string]string{
		"unknown field":  `{"nik":"1","name":"A","email":"a@example.com"}`,
		"trailing value": `{"nik":"1","name":"A"} {"nik":"2","name":"B"}`,
		"not json":       `nik=1&name=A`,
		"oversized":      `{"nik":"1","name":"` + strings.Repeat("a", 70<<10) + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := client.Post(srv.URL+"/api/customers", "application/json", strings.NewReader(body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var res handler.ResultDTO
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
			assert.False(t, res.Success)
			assert.Equal(t, "Invalid request body.", res.Message)
		})
	}

	var page handler.CustomerPageDTO
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodGet, srv.URL+"/api/customers", nil, &page))
	assert.Zero(t, page.Total)
}

func TestCustomerAPI_List(t *testing.T) {
	srv, _ := newTestServer(t)
	client := loggedInClient(t, srv)

	for i := 1; i <= 12; i++ {
		var res handler.ResultDTO
		require.Equal(t, http.StatusCreated, doJSON(t, client, http.MethodPost, srv.URL+"/api/customers",
			handler.CustomerRequest{NIK: "N" + strconv.Itoa(i), Name: "Customer " + strconv.Itoa(i), Salary: int64(i * 1000)}, &res))
	}

	var page handler.CustomerPageDTO
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodGet, srv.URL+"/api/customers?page=3&size=5", nil, &page))
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 11, page.Start)
	assert.Equal(t, 12, page.End)
	require.Len(t, page.Customers, 2)
	assert.Equal(t, "N2", page.Customers[0].NIK, "newest first")

	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodGet, srv.URL+"/api/customers?search=12000&size=7", nil, &page))
	assert.Equal(t, 1, page.Total, "salary is searchable")
	assert.Equal(t, 10, page.Size, "unsupported size falls back to the default")
	assert.Equal(t, "N12", page.Customers[0].NIK)

	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodGet, srv.URL+"/api/customers?page=3&search=zzz", nil, &page))
	assert.Zero(t, page.Total)
	assert.Equal(t, 1, page.Page, "empty result never reports a page past the last")
	assert.Equal(t, 1, page.TotalPages)
	assert.Zero(t, page.Start)
}

func TestAuthAPI(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)

	var failed map[string]string
	status := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login",
		map[string]string{"email": testEmail, "password": "nope"}, &failed)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password.", failed["error"])

	var login struct {
		User handler.UserDTO `json:"user"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login",
		map[string]string{"email": testEmail, "password": testPassword}, &login))
	assert.Equal(t, testEmail, login.User.Email)

	var me struct {
		User handler.UserDTO `json:"user"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, client, http.MethodGet, srv.URL+"/api/auth/me", nil, &me))
	assert.Equal(t, "Test Operator", me.User.DisplayName)

	var reg struct {
		User handler.UserDTO `json:"user"`
	}
	require.Equal(t, http.StatusCreated, doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"email": "second@example.com", "displayName": "Second", "password": "password456", "confirmPassword": "password456",
	}, &reg))
	assert.Equal(t, "second@example.com", reg.User.Email)

	assert.Equal(t, http.StatusNoContent, doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, newClient(t), http.MethodGet, srv.URL+"/api/auth/me", nil, nil))
}
