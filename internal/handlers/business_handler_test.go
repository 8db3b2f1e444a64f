package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"extra-credit-union/models"

	"github.com/gin-gonic/gin"
)

func TestBusinessesRequireAuthentication(t *testing.T) {
	r := setupRouter(t)
	createBusiness(t, "Grocer", "food", false)

	if w := doRequest(r, http.MethodGet, "/businesses", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("ожидали 401 без токена, получили %d", w.Code)
	}
}

func TestBusinessesReadableByAnyUser(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "alice", false)
	grocer := createBusiness(t, "Grocer", "food", false)
	createBusiness(t, "Cinema", "fun", false)

	w := doRequest(r, http.MethodGet, "/businesses", tokenFor(t, alice), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ожидали 200, получили %d", w.Code)
	}
	var businesses []models.Business
	decodeBody(t, w, &businesses)
	if len(businesses) != 2 {
		t.Errorf("ожидали 2 контрагента, получили %d", len(businesses))
	}

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/businesses/%d", grocer.ID), tokenFor(t, alice), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ожидали 200, получили %d", w.Code)
	}
	var business models.Business
	decodeBody(t, w, &business)
	if business.Name != "Grocer" || business.Category != "food" {
		t.Errorf("неверный контрагент: %+v", business)
	}

	if w := doRequest(r, http.MethodGet, "/businesses/9999", tokenFor(t, alice), nil); w.Code != http.StatusNotFound {
		t.Errorf("ожидали 404, получили %d", w.Code)
	}
}

func TestBusinessWritesRequireStaff(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "alice", false)
	staff := createUser(t, "manager", true)

	body := gin.H{"name": "EvilCorp", "category": "weapons", "sanctioned": true}

	if w := doRequest(r, http.MethodPost, "/businesses", tokenFor(t, alice), body); w.Code != http.StatusForbidden {
		t.Fatalf("ожидали 403 для не-сотрудника, получили %d", w.Code)
	}

	w := doRequest(r, http.MethodPost, "/businesses", tokenFor(t, staff), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("ожидали 201, получили %d (тело: %s)", w.Code, w.Body.String())
	}
	var created models.Business
	decodeBody(t, w, &created)
	if !created.Sanctioned {
		t.Errorf("флаг sanctioned потерян: %+v", created)
	}

	update := gin.H{"name": "EvilCorp", "category": "weapons", "sanctioned": false}
	path := fmt.Sprintf("/businesses/%d", created.ID)
	if w := doRequest(r, http.MethodPut, path, tokenFor(t, alice), update); w.Code != http.StatusForbidden {
		t.Errorf("ожидали 403 на обновлении, получили %d", w.Code)
	}
	w = doRequest(r, http.MethodPut, path, tokenFor(t, staff), update)
	if w.Code != http.StatusOK {
		t.Fatalf("ожидали 200 на обновлении сотрудником, получили %d", w.Code)
	}
	var updated models.Business
	decodeBody(t, w, &updated)
	if updated.Sanctioned {
		t.Errorf("флаг sanctioned не снялся: %+v", updated)
	}

	if w := doRequest(r, http.MethodDelete, path, tokenFor(t, alice), nil); w.Code != http.StatusForbidden {
		t.Errorf("ожидали 403 на удалении, получили %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, path, tokenFor(t, staff), nil); w.Code != http.StatusOK {
		t.Errorf("ожидали 200 на удалении сотрудником, получили %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, path, tokenFor(t, staff), nil); w.Code != http.StatusNotFound {
		t.Errorf("повторное удаление должно дать 404, получили %d", w.Code)
	}
}
