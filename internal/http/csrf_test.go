package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestCSRFRequiredOnForms(t *testing.T) {
	app, db := newTestApp(t, true)

	// no token at all
	resp := postForm(t, app, "/listings", cabinForm())
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", resp.StatusCode)
	}
	if msg := doc(t, resp).Find(".error-message").Text(); !strings.Contains(msg, "Security check failed") {
		t.Fatalf("unexpected message %q", msg)
	}

	// fetch csrf token
	newResp := get(t, app, "/listings/new")
	csrfTok := extractCookie(newResp, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}
	formTok, _ := doc(t, newResp).Find(`form input[name="csrf"]`).Attr("value")
	if formTok != csrfTok {
		t.Fatalf("form token %q does not match cookie %q", formTok, csrfTok)
	}

	form := cabinForm()
	form.Set("csrf", csrfTok)
	expectRedirect(t, postForm(t, app, "/listings", form, &http.Cookie{Name: "csrf_", Value: csrfTok}), "/listings")
	id := lastListingID(t, db)

	// overridden DELETE is still checked
	resp = postForm(t, app, "/listings/"+id+"?_method=DELETE", url.Values{})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for DELETE without token, got %d", resp.StatusCode)
	}
	if n := count(t, db, "listings"); n != 1 {
		t.Fatalf("listing deleted without token")
	}

	resp = postForm(t, app, "/listings/"+id+"?_method=DELETE", url.Values{"csrf": {csrfTok}}, &http.Cookie{Name: "csrf_", Value: csrfTok})
	expectRedirect(t, resp, "/listings")
}

func TestCSRFFailureLogged(t *testing.T) {
	app, _ := newTestApp(t, true)
	entries := captureLogs(t, func() {
		postForm(t, app, "/listings", cabinForm(), &http.Cookie{Name: "csrf_", Value: "forged"})
	})
	if _, ok := findAction(entries, "csrf.fail"); !ok {
		t.Fatal("expected csrf.fail log")
	}
}

func TestCSRFSkipsJSON(t *testing.T) {
	app, _ := newTestApp(t, true)
	resp := postJSON(t, app, "/listings", `{"listing":{"title":"A","description":"B","price":1,"location":"C","country":"D"}}`)
	expectRedirect(t, resp, "/listings")
}
