package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resuminator/internal/section"
)

func kindByName(t *testing.T, name string) section.Kind {
	t.Helper()
	for _, kind := range section.Kinds {
		if kind.Name == name {
			return kind
		}
	}
	t.Fatalf("unknown kind %q", name)
	return section.Kind{}
}

func sectionContext(t *testing.T, method string, body any, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, w := testContext(t, jsonRequest(t, method, "/api/section", body))
	c.Set("userID", userID)
	return c, w
}

func TestPersonalLifecycle(t *testing.T) {
	db := newTestDB(t)
	h := NewSectionHandler(db, kindByName(t, "personal"))

	// POST then GET returns the submitted fields.
	c, w := sectionContext(t, http.MethodPost, map[string]string{"name": "Alice A"}, 1)
	h.Create(c)
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	c, w = sectionContext(t, http.MethodGet, nil, 1)
	h.Get(c)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", w.Code)
	}
	if body := decodeBody(t, w); body["name"] != "Alice A" {
		t.Fatalf("expected name Alice A got %v", body["name"])
	}

	// DELETE then GET returns null.
	c, w = sectionContext(t, http.MethodDelete, nil, 1)
	h.Delete(c)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	c, w = sectionContext(t, http.MethodGet, nil, 1)
	h.Get(c)
	if w.Code != http.StatusOK || w.Body.String() != "null" {
		t.Fatalf("expected 200 null after delete, got %d %q", w.Code, w.Body.String())
	}
}

func TestDeleteAbsentSectionIs404(t *testing.T) {
	db := newTestDB(t)
	h := NewSectionHandler(db, kindByName(t, "objective"))

	c, w := sectionContext(t, http.MethodDelete, nil, 1)
	h.Delete(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSectionsAreOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	h := NewSectionHandler(db, kindByName(t, "skills"))

	c, w := sectionContext(t, http.MethodPost, map[string]string{"content": "Go"}, 1)
	h.Create(c)
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200 got %d", w.Code)
	}

	c, w = sectionContext(t, http.MethodGet, nil, 2)
	h.Get(c)
	if w.Body.String() != "null" {
		t.Fatalf("user 2 must not see user 1's data, got %q", w.Body.String())
	}
}

func TestUpdateTargetsExistingRow(t *testing.T) {
	db := newTestDB(t)
	h := NewSectionHandler(db, kindByName(t, "objective"))

	c, w := sectionContext(t, http.MethodPost, map[string]string{"objective": "old"}, 1)
	h.Create(c)
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200 got %d", w.Code)
	}
	createdID := decodeBody(t, w)["id"]

	c, w = sectionContext(t, http.MethodPut, map[string]string{"objective": "new"}, 1)
	h.Update(c)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["objective"] != "new" {
		t.Fatalf("expected updated objective, got %v", body["objective"])
	}
	if body["id"] != createdID {
		t.Fatalf("update must hit the created row: got id %v want %v", body["id"], createdID)
	}
}

func TestDeleteEntryKeepsSiblings(t *testing.T) {
	db := newTestDB(t)
	h := NewSectionHandler(db, kindByName(t, "experience"))

	c, w := sectionContext(t, http.MethodPost, map[string]any{
		"experiences": []map[string]any{
			{"company": "Acme"},
			{"company": "Globex"},
		},
	}, 1)
	h.Create(c)
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	entries := decodeBody(t, w)["experiences"].([]any)
	target := entries[0].(map[string]any)["id"].(string)

	c, w = sectionContext(t, http.MethodDelete, nil, 1)
	c.Params = gin.Params{{Key: "id", Value: target}}
	h.DeleteEntry(c)
	if w.Code != http.StatusOK {
		t.Fatalf("delete entry: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	c, w = sectionContext(t, http.MethodGet, nil, 1)
	h.Get(c)
	kept := decodeBody(t, w)["experiences"].([]any)
	if len(kept) != 1 {
		t.Fatalf("expected 1 remaining entry got %d", len(kept))
	}
	if kept[0].(map[string]any)["company"] != "Globex" {
		t.Fatalf("wrong sibling survived: %v", kept[0])
	}
}

func TestDeleteEntryUnknownIDIs404(t *testing.T) {
	db := newTestDB(t)
	h := NewSectionHandler(db, kindByName(t, "reference"))

	c, w := sectionContext(t, http.MethodPost, map[string]any{
		"referees": []map[string]any{{"name": "Dana"}},
	}, 1)
	h.Create(c)
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200 got %d", w.Code)
	}

	c, w = sectionContext(t, http.MethodDelete, nil, 1)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.DeleteEntry(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}
