package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"

	"go-retrofit/cart"
	"go-retrofit/middleware"
	"go-retrofit/models"
	"go-retrofit/repository"
	"go-retrofit/storage"
)

type recordingNotifier struct {
	sent chan models.Order
	err  error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan models.Order, 4)}
}

func (n *recordingNotifier) SendOrderNotification(order models.Order) error {
	n.sent <- order
	return n.err
}

func (n *recordingNotifier) wait(t *testing.T) models.Order {
	t.Helper()
	select {
	case o := <-n.sent:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("notification not sent")
		return models.Order{}
	}
}

type fixture struct {
	store    *storage.Memory
	vehicles *repository.VehicleRepository
	services *repository.ServiceRepository
	orders   *repository.OrderRepository
	notifier *recordingNotifier
	router   http.Handler
}

var defenderPath = models.ServicePath{Brand: "land-rover", Model: "defender", Year: "2020-2024", Category: "retrofits"}

// newFixture mounts every public and admin handler without the admin guard.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: storage.NewMemory(), notifier: newRecordingNotifier()}
	f.vehicles = repository.NewVehicleRepository(f.store)
	f.services = repository.NewServiceRepository(f.store)
	f.orders = repository.NewOrderRepository(f.store)

	vc := NewVehicleController(f.vehicles)
	sc := NewServiceController(f.services)
	oc := NewOrderController(f.orders, f.vehicles, f.notifier)
	cc := NewCartController(cart.NewSessionStore(f.store, nil), f.services, f.orders, f.notifier)

	r := mux.NewRouter()
	r.HandleFunc("/api/vehicles", vc.GetVehicles).Methods(http.MethodGet)
	r.HandleFunc("/api/vehicles", vc.CreateVehicle).Methods(http.MethodPost)
	r.HandleFunc("/api/vehicles", vc.MoveVehicle).Methods(http.MethodPatch)
	r.HandleFunc("/api/vehicles/{index}", vc.UpdateVehicle).Methods(http.MethodPut)
	r.HandleFunc("/api/vehicles/{index}", vc.DeleteVehicle).Methods(http.MethodDelete)
	r.HandleFunc("/api/services", sc.GetServices).Methods(http.MethodGet)
	r.HandleFunc("/api/services", sc.CreateService).Methods(http.MethodPost)
	r.HandleFunc("/api/services", sc.UpdateService).Methods(http.MethodPut)
	r.HandleFunc("/api/services", sc.MoveService).Methods(http.MethodPatch)
	r.HandleFunc("/api/services", sc.DeleteService).Methods(http.MethodDelete)
	r.HandleFunc("/api/services/{brand}/{model}/{year}", sc.GetVehicleServices).Methods(http.MethodGet)
	r.HandleFunc("/api/services/{brand}/{model}/{year}/{category}", sc.GetCategoryServices).Methods(http.MethodGet)
	r.HandleFunc("/api/orders", oc.CreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/api/orders", oc.GetOrders).Methods(http.MethodGet)
	r.HandleFunc("/api/orders", oc.UpdateOrderStatus).Methods(http.MethodPut)
	r.HandleFunc("/api/orders", oc.DeleteOrder).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart", cc.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", cc.ClearCart).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart/items", cc.AddToCart).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{id:.+}", cc.RemoveFromCart).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart/checkout", cc.Checkout).Methods(http.MethodPost)
	f.router = middleware.EnsureSession(r)
	return f
}

func (f *fixture) do(t *testing.T, method, target string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.vehicles.Create(ctx, models.Vehicle{
		Brand: "land-rover", Value: "defender", Title: "Defender", Image: "/uploads/defender.jpg",
		Years: []models.YearRange{{Value: "2020-2024", Label: "2020 - 2024"}},
	})
	if err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	for _, opt := range []models.ServiceOption{
		{Title: "Adaptive Cruise", Price: "£544", Requirements: "No", Status: models.ServiceInStock},
		{Title: "Tow Assist", Price: "£300", Requirements: "Yes"},
		{Title: "Matrix Lights", Price: "£900", Status: models.ServiceComingSoon},
	} {
		if _, err := f.services.Add(ctx, defenderPath, opt); err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}
}

func TestWriteErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{&repository.ValidationError{Field: "status", Message: "bad"}, http.StatusBadRequest},
		{&repository.NotFoundError{Resource: "order", Key: "x"}, http.StatusNotFound},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
		if rec.Code != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		var body map[string]string
		decode(t, rec, &body)
		if body["error"] == "" {
			t.Errorf("%v: missing error message", tc.err)
		}
	}
}

func TestWriteErrorReportsRequestID(t *testing.T) {
	log, _ := test.NewNullLogger()
	h := middleware.Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.New("disk full"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	var body map[string]string
	decode(t, rec, &body)
	if body["requestId"] == "" || body["requestId"] != rec.Header().Get("X-Request-ID") {
		t.Fatalf("expected request id %q in body, got %+v", rec.Header().Get("X-Request-ID"), body)
	}
}

func TestVehicleEndpoints(t *testing.T) {
	f := newFixture(t)
	for _, title := range []string{"Defender", "Discovery", "Velar"} {
		rec := f.do(t, http.MethodPost, "/api/vehicles", models.Vehicle{Brand: "land-rover", Value: title, Title: title})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", title, rec.Code, rec.Body)
		}
	}

	rec := f.do(t, http.MethodPatch, "/api/vehicles", models.MoveRequest{FromIndex: 0, ToIndex: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("move: %d %s", rec.Code, rec.Body)
	}

	rec = f.do(t, http.MethodDelete, "/api/vehicles/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body)
	}

	rec = f.do(t, http.MethodGet, "/api/vehicles", nil)
	var list []models.Vehicle
	decode(t, rec, &list)
	if len(list) != 2 || list[0].Title != "Velar" || list[1].Title != "Defender" {
		t.Fatalf("unexpected vehicles %+v", list)
	}
	for i, v := range list {
		if v.Order != i {
			t.Fatalf("expected order %d, got %d", i, v.Order)
		}
	}

	if rec := f.do(t, http.MethodPut, "/api/vehicles/9", models.Vehicle{Brand: "b", Value: "v", Title: "t"}); rec.Code != http.StatusNotFound {
		t.Fatalf("update missing: expected 404, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPut, "/api/vehicles/x", models.Vehicle{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad index: expected 400, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/api/vehicles", models.Vehicle{Title: "no brand"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid vehicle: expected 400, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/api/vehicles", "{not json"); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: expected 400, got %d", rec.Code)
	}
}

func TestServiceEndpoints(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	rec := f.do(t, http.MethodGet, "/api/services/land-rover/defender/2020-2024/retrofits", nil)
	var opts []models.ServiceOption
	decode(t, rec, &opts)
	if len(opts) != 3 || opts[0].Title != "Adaptive Cruise" {
		t.Fatalf("unexpected lookup %+v", opts)
	}

	rec = f.do(t, http.MethodGet, "/api/services/land-rover/defender/1999/retrofits", nil)
	if rec.Code != http.StatusOK || bytes.TrimSpace(rec.Body.Bytes())[0] != '[' {
		t.Fatalf("missing path should be an empty list: %d %s", rec.Code, rec.Body)
	}

	rec = f.do(t, http.MethodGet, "/api/services/land-rover/defender/2020-2024", nil)
	var cats models.CategoryServices
	decode(t, rec, &cats)
	if len(cats["retrofits"]) != 3 {
		t.Fatalf("unexpected categories %+v", cats)
	}

	req := models.ServiceRequest{ServicePath: defenderPath, Index: 1, Service: models.ServiceOption{Title: "Tow Assist Pro", Price: "£350"}}
	if rec := f.do(t, http.MethodPut, "/api/services", req); rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body)
	}
	req = models.ServiceRequest{ServicePath: defenderPath, FromIndex: 0, ToIndex: 1}
	if rec := f.do(t, http.MethodPatch, "/api/services", req); rec.Code != http.StatusOK {
		t.Fatalf("move: %d %s", rec.Code, rec.Body)
	}
	rec = f.do(t, http.MethodDelete, "/api/services?brand=land-rover&model=defender&year=2020-2024&category=retrofits&index=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body)
	}

	got, _ := f.services.Lookup(context.Background(), defenderPath)
	if len(got) != 2 || got[0].Title != "Tow Assist Pro" || got[1].Title != "Adaptive Cruise" {
		t.Fatalf("unexpected options %+v", got)
	}

	rec = f.do(t, http.MethodPost, "/api/services", models.ServiceRequest{ServicePath: defenderPath, Service: models.ServiceOption{Title: "Ambient Lighting"}})
	var created struct {
		Success bool `json:"success"`
		Index   int  `json:"index"`
	}
	decode(t, rec, &created)
	if rec.Code != http.StatusCreated || !created.Success || created.Index != 2 {
		t.Fatalf("create: %d %+v", rec.Code, created)
	}

	if rec := f.do(t, http.MethodDelete, "/api/services?brand=land-rover&model=defender&year=2020-2024&category=nope&index=0", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing path: expected 404, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/api/services", models.ServiceRequest{ServicePath: defenderPath, Service: models.ServiceOption{Title: "x", Status: "sold-out"}}); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", rec.Code)
	}
}

func TestCreateOrderAndNotify(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/orders", models.CreateOrderRequest{
		CustomerName: "Sam", Contact: "sam@example.com", Message: "Tow bar for a 2019 Discovery?",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body)
	}
	var resp struct {
		Success bool   `json:"success"`
		OrderID string `json:"orderId"`
	}
	decode(t, rec, &resp)
	if !resp.Success || resp.OrderID == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
	sent := f.notifier.wait(t)
	if sent.ID != resp.OrderID || sent.Type != models.OrderTypeGeneralInquiry {
		t.Fatalf("unexpected notification %+v", sent)
	}

	if rec := f.do(t, http.MethodPost, "/api/orders", models.CreateOrderRequest{CustomerName: "Sam"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing contact: expected 400, got %d", rec.Code)
	}
}

func TestOrderNotificationFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")
	rec := f.do(t, http.MethodPost, "/api/orders", models.CreateOrderRequest{CustomerName: "Sam", Contact: "07700 900000"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 despite mail failure, got %d", rec.Code)
	}
	f.notifier.wait(t)
}

func TestAdminOrderWorkflow(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()
	ref := models.VehicleRef{Brand: "land-rover", Model: "defender", Year: "2021"}
	order, err := f.orders.Create(ctx, models.CreateOrderRequest{
		CustomerName: "Sam", Contact: "sam@example.com",
		Items: []models.CartItem{models.NewCartItem(ref, models.ServiceOption{Title: "Adaptive Cruise", Price: "£544"})},
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	other, _ := f.orders.Create(ctx, models.CreateOrderRequest{
		CustomerName: "Alex", Contact: "alex@example.com",
		Items: []models.CartItem{models.NewCartItem(models.VehicleRef{Brand: "jaguar", Model: "f-pace", Year: "2019"}, models.ServiceOption{Title: "CarPlay", Price: "£400"})},
	})

	rec := f.do(t, http.MethodGet, "/api/orders", nil)
	var views []models.OrderView
	decode(t, rec, &views)
	if len(views) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(views))
	}
	if views[0].VehicleImage != "/uploads/defender.jpg" {
		t.Fatalf("expected resolved image, got %q", views[0].VehicleImage)
	}
	if views[1].VehicleImage != "" {
		t.Fatalf("unknown vehicle should have no image, got %q", views[1].VehicleImage)
	}

	rec = f.do(t, http.MethodPut, "/api/orders", models.UpdateOrderStatusRequest{ID: order.ID, Status: models.StatusCompleted})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: %d %s", rec.Code, rec.Body)
	}
	updated, _ := f.orders.Get(ctx, order.ID)
	if updated.Status != models.StatusCompleted || updated.UpdatedAt == nil || !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatalf("status not applied: %+v", updated)
	}

	if rec := f.do(t, http.MethodPut, "/api/orders", models.UpdateOrderStatusRequest{ID: order.ID, Status: "shipped"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: expected 400, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPut, "/api/orders", models.UpdateOrderStatusRequest{ID: "nope", Status: models.StatusReviewed}); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", rec.Code)
	}

	if rec := f.do(t, http.MethodDelete, "/api/orders?id=nope", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing: expected 404, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodDelete, "/api/orders?id="+other.ID, nil); rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body)
	}
	list, _ := f.orders.List(ctx)
	if len(list) != 1 || list[0].ID != order.ID {
		t.Fatalf("unexpected orders after delete %+v", list)
	}
}

type cartBody struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Total     string            `json:"total"`
	Vehicle   models.VehicleRef `json:"vehicle"`
	Cleared   bool              `json:"cleared"`
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	rec := f.do(t, http.MethodGet, "/api/cart", nil)
	session := sessionCookie(t, rec)
	var body cartBody
	decode(t, rec, &body)
	if body.ItemCount != 0 || body.Total != "£0" {
		t.Fatalf("unexpected empty cart %+v", body)
	}

	add := func(req models.AddToCartRequest) (*httptest.ResponseRecorder, cartBody) {
		rec := f.do(t, http.MethodPost, "/api/cart/items", req, session)
		var b cartBody
		if rec.Code == http.StatusOK {
			decode(t, rec, &b)
		}
		return rec, b
	}
	base := models.AddToCartRequest{Brand: "land-rover", Model: "defender", Year: "2020-2024", Category: "retrofits"}

	rec, body = add(base)
	if rec.Code != http.StatusOK || body.ItemCount != 1 {
		t.Fatalf("add: %d %+v", rec.Code, body)
	}
	second := base
	second.Index = 1
	_, body = add(second)
	_, body = add(second)
	if body.ItemCount != 2 || body.Total != "£844" {
		t.Fatalf("expected 2 items totalling £844, got %+v", body)
	}

	unavailable := base
	unavailable.Index = 2
	if rec, _ := add(unavailable); rec.Code != http.StatusBadRequest {
		t.Fatalf("coming-soon option: expected 400, got %d", rec.Code)
	}
	missing := base
	missing.Index = 7
	if rec, _ := add(missing); rec.Code != http.StatusNotFound {
		t.Fatalf("missing option: expected 404, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodDelete, "/api/cart/items/"+url.PathEscape(body.Items[0].ID), nil, session)
	decode(t, rec, &body)
	if body.ItemCount != 1 || body.Total != "£300" {
		t.Fatalf("remove: %+v", body)
	}

	// A fresh browser sees its own empty cart
	rec = f.do(t, http.MethodGet, "/api/cart", nil)
	decode(t, rec, &body)
	if body.ItemCount != 0 {
		t.Fatalf("carts leaked across sessions: %+v", body)
	}

	rec = f.do(t, http.MethodDelete, "/api/cart", nil, session)
	decode(t, rec, &body)
	if body.ItemCount != 0 {
		t.Fatalf("clear: %+v", body)
	}
}

func TestRemoveItemWithSlashInTitle(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	if _, err := f.services.Add(context.Background(), defenderPath, models.ServiceOption{Title: "CarPlay / Android Auto", Price: "£450"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := f.do(t, http.MethodGet, "/api/cart", nil)
	session := sessionCookie(t, rec)
	f.do(t, http.MethodPost, "/api/cart/items", models.AddToCartRequest{Brand: "land-rover", Model: "defender", Year: "2020-2024", Category: "retrofits"}, session)
	rec = f.do(t, http.MethodPost, "/api/cart/items", models.AddToCartRequest{Brand: "land-rover", Model: "defender", Year: "2020-2024", Category: "retrofits", Index: 3}, session)
	var body cartBody
	decode(t, rec, &body)
	if body.ItemCount != 2 {
		t.Fatalf("add: %+v", body)
	}
	id := body.Items[1].ID
	if id != "land-rover-defender-2020-2024-CarPlay / Android Auto" {
		t.Fatalf("unexpected id %q", id)
	}

	rec = f.do(t, http.MethodDelete, "/api/cart/items/"+url.PathEscape(id), nil, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body)
	}
	decode(t, rec, &body)
	if body.ItemCount != 1 || body.Items[0].Title != "Adaptive Cruise" {
		t.Fatalf("expected only Adaptive Cruise left, got %+v", body)
	}
}

func TestCartSwitchVehicleClears(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()
	other := models.ServicePath{Brand: "land-rover", Model: "discovery", Year: "2017-2020", Category: "retrofits"}
	if _, err := f.services.Add(ctx, other, models.ServiceOption{Title: "Tow Assist", Price: "£250"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := f.do(t, http.MethodGet, "/api/cart", nil)
	session := sessionCookie(t, rec)

	f.do(t, http.MethodPost, "/api/cart/items", models.AddToCartRequest{Brand: "land-rover", Model: "defender", Year: "2020-2024", Category: "retrofits"}, session)
	rec = f.do(t, http.MethodPost, "/api/cart/items", models.AddToCartRequest{Brand: "land-rover", Model: "discovery", Year: "2017-2020", Category: "retrofits"}, session)
	var body cartBody
	decode(t, rec, &body)
	if !body.Cleared || body.ItemCount != 1 || body.Vehicle.Model != "discovery" || body.Total != "£250" {
		t.Fatalf("expected cart reset to the new vehicle, got %+v", body)
	}
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	rec := f.do(t, http.MethodGet, "/api/cart", nil)
	session := sessionCookie(t, rec)

	checkout := models.CheckoutRequest{CustomerName: "Sam", Contact: "sam@example.com", VehicleVIN: "salea7ax2n2000001"}
	if rec := f.do(t, http.MethodPost, "/api/cart/checkout", checkout, session); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty cart checkout: expected 400, got %d", rec.Code)
	}

	base := models.AddToCartRequest{Brand: "land-rover", Model: "defender", Year: "2020-2024", Category: "retrofits"}
	f.do(t, http.MethodPost, "/api/cart/items", base, session)
	base.Index = 1
	f.do(t, http.MethodPost, "/api/cart/items", base, session)

	if rec := f.do(t, http.MethodPost, "/api/cart/checkout", models.CheckoutRequest{CustomerName: "Sam"}, session); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing contact: expected 400, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/api/cart/checkout", checkout, session)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: %d %s", rec.Code, rec.Body)
	}
	var resp struct {
		OrderID string `json:"orderId"`
		Total   string `json:"total"`
	}
	decode(t, rec, &resp)
	if resp.Total != "£844" {
		t.Fatalf("expected total £844, got %s", resp.Total)
	}

	order, err := f.orders.Get(context.Background(), resp.OrderID)
	if err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if len(order.Items) != 2 || order.Vehicle.Model != "defender" || order.Status != models.StatusPending {
		t.Fatalf("unexpected order %+v", order)
	}
	if sent := f.notifier.wait(t); sent.ID != order.ID {
		t.Fatalf("notification for wrong order %s", sent.ID)
	}

	rec = f.do(t, http.MethodGet, "/api/cart", nil, session)
	var body cartBody
	decode(t, rec, &body)
	if body.ItemCount != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", body)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(storage.NewMemory())(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
