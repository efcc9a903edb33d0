package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"petverse/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, baseURL, method, path, userID, role string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	if role != "" {
		req.Header.Set("X-Debug-Role", role)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func TestHTTP_AdoptionFlow(t *testing.T) {
	ts := newTestServer(t)

	// 1) Admin publica una mascota
	st, body := doReq(t, ts.URL, "POST", "/admin/pets", "admin-1", "admin", map[string]any{
		"name": "Rocky",
		"type": "Dog",
		"age":  6,
	})
	if st != http.StatusCreated {
		t.Fatalf("create pet: expected 201, got %d body=%s", st, body)
	}
	var pet struct {
		ID  string `json:"id"`
		Fee int    `json:"fee"`
	}
	if err := json.Unmarshal(body, &pet); err != nil {
		t.Fatalf("decode pet: %v", err)
	}
	if pet.Fee != 1400 {
		t.Fatalf("senior dog fee: expected 1400, got %d", pet.Fee)
	}

	// 2) Un usuario normal no puede publicar
	if st, _ := doReq(t, ts.URL, "POST", "/admin/pets", "user-1", "", map[string]any{
		"name": "x", "type": "Cat",
	}); st != http.StatusForbidden {
		t.Fatalf("non-admin create pet: expected 403, got %d", st)
	}

	// 3) La mascota aparece en el listado público
	st, body = doReq(t, ts.URL, "GET", "/pets", "", "", nil)
	if st != http.StatusOK {
		t.Fatalf("list pets: expected 200, got %d", st)
	}
	var listing []map[string]any
	_ = json.Unmarshal(body, &listing)
	if len(listing) != 1 {
		t.Fatalf("expected 1 listed pet, got %d", len(listing))
	}

	// 4) Un usuario solicita la adopción (post-pago)
	st, body = doReq(t, ts.URL, "POST", "/adoptions", "user-1", "", map[string]any{
		"pet_id":       pet.ID,
		"adopter_name": "Maria",
		"email":        "maria@x.com",
		"payment_id":   "pay_1",
	})
	if st != http.StatusCreated {
		t.Fatalf("submit adoption: expected 201, got %d body=%s", st, body)
	}
	var adoption struct {
		ID  string `json:"id"`
		Fee int    `json:"fee"`
	}
	_ = json.Unmarshal(body, &adoption)
	if adoption.Fee != 1400 {
		t.Fatalf("adoption fee frozen: expected 1400, got %d", adoption.Fee)
	}

	// 5) La mascota sale del listado mientras está pendiente
	_, body = doReq(t, ts.URL, "GET", "/pets", "", "", nil)
	listing = nil
	_ = json.Unmarshal(body, &listing)
	if len(listing) != 0 {
		t.Fatalf("pending adoption must hide pet, got %d listed", len(listing))
	}

	// 6) El admin ve la notificación y acepta
	st, body = doReq(t, ts.URL, "GET", "/admin/notifications", "admin-1", "admin", nil)
	if st != http.StatusOK {
		t.Fatalf("list notifications: expected 200, got %d", st)
	}
	var notices []map[string]any
	_ = json.Unmarshal(body, &notices)
	if len(notices) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notices))
	}

	if st, body := doReq(t, ts.URL, "POST", "/admin/adoptions/"+adoption.ID+"/accept", "admin-1", "admin", nil); st != http.StatusOK {
		t.Fatalf("accept adoption: expected 200, got %d body=%s", st, body)
	}

	// 7) Aceptada: la mascota sigue fuera del listado y el usuario la ve en
	// su historial
	st, body = doReq(t, ts.URL, "GET", "/adoptions/mine", "user-1", "", nil)
	if st != http.StatusOK {
		t.Fatalf("my adoptions: expected 200, got %d", st)
	}
	var mine []struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &mine)
	if len(mine) != 1 || mine[0].Status != "accepted" {
		t.Fatalf("expected one accepted adoption, got %+v", mine)
	}
}

func TestHTTP_SignupBeginAndResend(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "POST", "/auth/signup", "", "", map[string]any{
		"email":    "a@x.com",
		"password": "secret1",
		"username": "a1",
	})
	if st != http.StatusAccepted {
		t.Fatalf("signup: expected 202, got %d body=%s", st, body)
	}

	// Sin verificar no hay perfil todavía.
	if st, _ := doReq(t, ts.URL, "GET", "/admin/users", "admin-1", "admin", nil); st != http.StatusOK {
		t.Fatalf("list users: expected 200, got %d", st)
	}

	// Resend con slot vivo responde ok.
	if st, body := doReq(t, ts.URL, "POST", "/auth/resend-otp", "", "", map[string]any{
		"email": "a@x.com",
	}); st != http.StatusOK && st != http.StatusAccepted {
		t.Fatalf("resend: unexpected status %d body=%s", st, body)
	}

	// Resend sin pending responde 404.
	if st, _ := doReq(t, ts.URL, "POST", "/auth/resend-otp", "", "", map[string]any{
		"email": "nobody@x.com",
	}); st != http.StatusNotFound {
		t.Fatalf("resend without pending: expected 404, got %d", st)
	}

	// Verificar con un código inventado responde 400.
	if st, _ := doReq(t, ts.URL, "POST", "/auth/verify-otp", "", "", map[string]any{
		"email": "a@x.com",
		"code":  "000000",
	}); st != http.StatusBadRequest {
		t.Fatalf("verify with wrong code: expected 400, got %d", st)
	}
}

func TestHTTP_LostFoundModeration(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "POST", "/lostfound", "user-1", "", map[string]any{
		"report_type":   "lost",
		"pet_name":      "Luna",
		"location":      "Parque Kennedy",
		"contact_email": "ana@x.com",
	})
	if st != http.StatusCreated {
		t.Fatalf("submit report: expected 201, got %d body=%s", st, body)
	}
	var report struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &report)

	// Invisible hasta la aprobación.
	_, body = doReq(t, ts.URL, "GET", "/lostfound", "", "", nil)
	var visible []map[string]any
	_ = json.Unmarshal(body, &visible)
	if len(visible) != 0 {
		t.Fatalf("pending report must be hidden, got %d", len(visible))
	}

	if st, body := doReq(t, ts.URL, "PATCH", "/admin/lostfound/"+report.ID+"/status", "admin-1", "admin", map[string]any{
		"status": "approved",
	}); st != http.StatusOK {
		t.Fatalf("approve report: expected 200, got %d body=%s", st, body)
	}

	// Aprobado: visible y con alerta comunitaria automática.
	_, body = doReq(t, ts.URL, "GET", "/lostfound?type=lost", "", "", nil)
	visible = nil
	_ = json.Unmarshal(body, &visible)
	if len(visible) != 1 {
		t.Fatalf("approved report must be visible, got %d", len(visible))
	}

	_, body = doReq(t, ts.URL, "GET", "/community/posts", "", "", nil)
	var posts []struct {
		Type         string `json:"post_type"`
		LostReportID string `json:"lost_report_id"`
	}
	_ = json.Unmarshal(body, &posts)
	if len(posts) != 1 || posts[0].Type != "lost_pet" || posts[0].LostReportID != report.ID {
		t.Fatalf("expected auto lost alert post, got %+v", posts)
	}
}

func TestHTTP_DonationAndAdminReview(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "POST", "/donations", "", "", map[string]any{
		"donor_name": "Carlos",
		"email":      "carlos@x.com",
		"amount":     500,
		"payment_id": "pay_don_1",
	})
	if st != http.StatusCreated {
		t.Fatalf("donate: expected 201, got %d body=%s", st, body)
	}
	var donation struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &donation)
	if donation.Status != "verified" {
		t.Fatalf("donation must be born verified, got %s", donation.Status)
	}

	// Solo admin lista donaciones.
	if st, _ := doReq(t, ts.URL, "GET", "/admin/donations", "user-1", "", nil); st != http.StatusForbidden {
		t.Fatalf("non-admin donations list: expected 403, got %d", st)
	}
	st, body = doReq(t, ts.URL, "GET", "/admin/donations?status=verified", "admin-1", "admin", nil)
	if st != http.StatusOK {
		t.Fatalf("admin donations list: expected 200, got %d", st)
	}
	var donations []map[string]any
	_ = json.Unmarshal(body, &donations)
	if len(donations) != 1 {
		t.Fatalf("expected 1 verified donation, got %d", len(donations))
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", "", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: got %d %q", st, body)
	}
}
