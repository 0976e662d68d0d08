package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/cart"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/catalog"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/inquiry"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/metrics"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/middleware"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/order"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/roles"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/task"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/validation"
)

type testEnv struct {
	products  *fakeProducts
	carts     *fakeCarts
	orders    *fakeOrders
	courses   *fakeCourses
	tasks     *fakeTasks
	inquiries *fakeInquiries
	metrics   *metrics.Metrics
	logs      *observer.ObservedLogs
	router    http.Handler
}

func newTestEnv() *testEnv {
	core, logs := observer.New(zap.InfoLevel)
	e := &testEnv{
		products:  &fakeProducts{},
		carts:     &fakeCarts{},
		orders:    &fakeOrders{},
		courses:   &fakeCourses{},
		tasks:     &fakeTasks{},
		inquiries: &fakeInquiries{},
		metrics:   metrics.New(),
		logs:      logs,
	}
	e.router = NewRouter(Deps{
		Logger:           zap.New(core),
		Metrics:          e.metrics,
		Roles:            roles.NewRegistry(roles.DefaultDefinitions()),
		CORSAllowOrigins: []string{"*"},
		Products:         e.products,
		Carts:            e.carts,
		Orders:           e.orders,
		Courses:          e.courses,
		Tasks:            e.tasks,
		Inquiries:        e.inquiries,
	})
	return e
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func asUser(req *http.Request, userID string, roleNames ...string) *http.Request {
	req.Header.Set(middleware.HeaderUserID, userID)
	req.Header.Set(middleware.HeaderUserRoles, strings.Join(roleNames, ","))
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	e := newTestEnv()

	rec := e.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "portal", body["service"])
}

func TestGetProduct(t *testing.T) {
	tests := map[string]struct {
		path       string
		getErr     error
		wantStatus int
		wantCode   string
	}{
		"found":     {path: "/products/7", wantStatus: http.StatusOK},
		"not found": {path: "/products/8", getErr: apperr.NotFound("Product", 8), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		"bad id":    {path: "/products/abc", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEnv()
			e.products.getFunc = func(ctx context.Context, id int64) (catalog.Product, error) {
				if tc.getErr != nil {
					return catalog.Product{}, tc.getErr
				}
				return catalog.Product{ID: id, Name: "Hoodie"}, nil
			}

			rec := e.do(httptest.NewRequest(http.MethodGet, tc.path, nil))

			require.Equal(t, tc.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			if tc.wantCode != "" {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tc.wantCode, body["code"])
				return
			}
			assert.Equal(t, true, body["success"])
			product := body["product"].(map[string]any)
			assert.Equal(t, "Hoodie", product["name"])
		})
	}
}

func TestCreateProduct_Authorization(t *testing.T) {
	tests := map[string]struct {
		roles      []string
		userID     string
		wantStatus int
	}{
		"anonymous": {wantStatus: http.StatusUnauthorized},
		"member":    {userID: "u-1", roles: []string{roles.Member}, wantStatus: http.StatusForbidden},
		"admin":     {userID: "u-2", roles: []string{roles.Admin}, wantStatus: http.StatusCreated},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEnv()
			var got catalog.ProductInput
			e.products.createFunc = func(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
				got = in
				return catalog.Product{ID: 5, Name: in.Name, Price: in.Price}, nil
			}

			req := jsonRequest(http.MethodPost, "/products", `{"name":"Mug","price":"12.50","stock":4}`)
			if tc.userID != "" {
				asUser(req, tc.userID, tc.roles...)
			}
			rec := e.do(req)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusCreated {
				assert.Equal(t, "Mug", got.Name)
				assert.True(t, decimal.RequireFromString("12.5").Equal(got.Price))
				assert.Equal(t, 4, got.Stock)
				assert.Equal(t, float64(5), decodeBody(t, rec)["id"])
			}
		})
	}
}

func TestDeleteProduct_InUse(t *testing.T) {
	e := newTestEnv()
	e.products.deleteFunc = func(ctx context.Context, id int64) error {
		return apperr.BusinessRule("Product has orders and cannot be deleted. Set its stock to 0 instead.")
	}

	rec := e.do(asUser(httptest.NewRequest(http.MethodDelete, "/products/3", nil), "admin", roles.Admin))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "BUSINESS_RULE_VIOLATION", decodeBody(t, rec)["code"])
}

func TestAddToCart_Form(t *testing.T) {
	e := newTestEnv()
	var (
		gotSession string
		gotQty     int
		gotSize    string
	)
	e.carts.addFunc = func(ctx context.Context, sessionID string, productID int64, quantity int, size string) (cart.Cart, error) {
		gotSession, gotQty, gotSize = sessionID, quantity, size
		return cart.Cart{Lines: []cart.Line{{
			ProductID: productID, ProductName: "Space Tee", Price: decimal.RequireFromString("15.00"), Quantity: quantity, Size: size,
		}}}, nil
	}

	rec := e.do(formRequest(http.MethodPost, "/cart/add", url.Values{"productId": {"3"}, "size": {"M"}}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, gotSession)
	assert.Equal(t, 1, gotQty)
	assert.Equal(t, "M", gotSize)

	body := decodeBody(t, rec)
	assert.Equal(t, "'Space Tee' has been added to the cart!", body["message"])
	c := body["cart"].(map[string]any)
	assert.Equal(t, float64(1), c["itemCount"])

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, gotSession, cookie.Value)
}

func TestAddToCart_SessionIsReused(t *testing.T) {
	e := newTestEnv()
	var sessions []string
	e.carts.addFunc = func(ctx context.Context, sessionID string, productID int64, quantity int, size string) (cart.Cart, error) {
		sessions = append(sessions, sessionID)
		return cart.Cart{}, nil
	}

	sid := "0b8e1f0e-51f4-4a3b-9a52-6b8f3d1c2e11"
	for i := 0; i < 2; i++ {
		req := jsonRequest(http.MethodPost, "/cart/add", `{"productId":1,"quantity":2}`)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sid})
		require.Equal(t, http.StatusOK, e.do(req).Code)
	}

	assert.Equal(t, []string{sid, sid}, sessions)
}

func TestCheckout_EmptyCart(t *testing.T) {
	e := newTestEnv()
	e.orders.previewFunc = func(ctx context.Context, sessionID string) (order.Summary, error) {
		return order.Summary{}, apperr.Validation("Cart is empty. Cannot process checkout.")
	}

	rec := e.do(httptest.NewRequest(http.MethodGet, "/checkout", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, "Cart is empty. Cannot process checkout.", body["message"])
}

func TestProcessCheckout(t *testing.T) {
	e := newTestEnv()
	var (
		gotUser     string
		gotShipping order.ShippingDetails
	)
	e.orders.processFunc = func(ctx context.Context, sessionID, userID string, shipping order.ShippingDetails) (order.Confirmation, error) {
		gotUser, gotShipping = userID, shipping
		return order.Confirmation{Token: "tok-9", GrandTotal: decimal.RequireFromString("33.00")}, nil
	}

	form := url.Values{
		"shippingFullName":    {"Lina Haddad"},
		"shippingAddress":     {"Amman, Street 5"},
		"shippingPhoneNumber": {"0791234567"},
		"shippingEmail":       {"lina@example.com"},
	}
	rec := e.do(asUser(formRequest(http.MethodPost, "/checkout/process", form), "user-7", roles.Member))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user-7", gotUser)
	assert.Equal(t, "Lina Haddad", gotShipping.FullName)
	assert.Equal(t, "0791234567", gotShipping.PhoneNumber)

	conf := decodeBody(t, rec)["confirmation"].(map[string]any)
	assert.Equal(t, "tok-9", conf["confirmationToken"])
}

func TestProcessCheckout_Errors(t *testing.T) {
	tests := map[string]struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		"insufficient stock": {
			err:        apperr.BusinessRule("Insufficient stock for product 'Mug'. Available: 1, Requested: 4"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "BUSINESS_RULE_VIOLATION",
		},
		"validation": {
			err:        apperr.ValidationFields(map[string][]string{"shippingPhoneNumber": {"is required"}}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		"unexpected": {
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "GENERAL_ERROR",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEnv()
			e.orders.processFunc = func(ctx context.Context, sessionID, userID string, shipping order.ShippingDetails) (order.Confirmation, error) {
				return order.Confirmation{}, tc.err
			}

			rec := e.do(jsonRequest(http.MethodPost, "/checkout/process", `{"shippingFullName":"A"}`))

			require.Equal(t, tc.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tc.wantCode, body["code"])
			assert.NotEmpty(t, body["correlationId"])
			if tc.wantCode == "VALIDATION_ERROR" {
				assert.Contains(t, body["errors"], "shippingPhoneNumber")
			}
			if tc.wantCode == "GENERAL_ERROR" {
				assert.Equal(t, "an unexpected error occurred", body["message"])
				assert.Equal(t, 1, e.logs.FilterMessage("request failed").Len())
			}
		})
	}
}

func TestOrderConfirmation(t *testing.T) {
	e := newTestEnv()

	rec := e.do(httptest.NewRequest(http.MethodGet, "/orders/confirmation?token=tok-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-1", decodeBody(t, rec)["confirmationToken"])

	rec = e.do(httptest.NewRequest(http.MethodGet, "/orders/confirmation", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyOrders(t *testing.T) {
	e := newTestEnv()
	e.orders.listByUserFunc = func(ctx context.Context, userID string) ([]order.Order, error) {
		return []order.Order{{ID: 1, UserID: userID}, {ID: 2, UserID: userID}}, nil
	}

	rec := e.do(httptest.NewRequest(http.MethodGet, "/orders/mine", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(asUser(httptest.NewRequest(http.MethodGet, "/orders/mine", nil), "user-3", roles.Member))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["orders"], 2)
}

func TestUpdateOrderStatus(t *testing.T) {
	e := newTestEnv()
	var (
		gotID     int64
		gotStatus string
	)
	e.orders.updateStatusFunc = func(ctx context.Context, id int64, status string) error {
		gotID, gotStatus = id, status
		return nil
	}

	req := asUser(formRequest(http.MethodPost, "/orders/12/status", url.Values{"newStatus": {"Shipped"}}), "admin", roles.Admin)
	rec := e.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), gotID)
	assert.Equal(t, "Shipped", gotStatus)

	rec = e.do(asUser(formRequest(http.MethodPost, "/orders/12/status", url.Values{"status": {"Shipped"}}), "t", roles.Trainer))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProfile(t *testing.T) {
	e := newTestEnv()

	req := asUser(httptest.NewRequest(http.MethodGet, "/profile", nil), "user-1", roles.Member, "Mentor")
	req.Header.Set(middleware.HeaderUserEmail, "sara@example.com")
	rec := e.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "sara@example.com", profile["email"])
	assert.Equal(t, float64(30), profile["highestControlLevel"])
	assert.Len(t, profile["roleDetails"], 2)
}

func TestListRoles_RequiresManageRoles(t *testing.T) {
	e := newTestEnv()

	rec := e.do(asUser(httptest.NewRequest(http.MethodGet, "/roles", nil), "m", roles.Member))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(asUser(httptest.NewRequest(http.MethodGet, "/roles", nil), "a", roles.Admin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["roles"], len(roles.DefaultDefinitions()))
}

func TestCreateCourse_TrainerAllowed(t *testing.T) {
	e := newTestEnv()

	rec := e.do(asUser(jsonRequest(http.MethodPost, "/courses", `{"title":"Go basics","duration":"4 weeks","price":0}`), "t", roles.Trainer))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(asUser(httptest.NewRequest(http.MethodDelete, "/courses/1", nil), "t", roles.Trainer))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTasks(t *testing.T) {
	e := newTestEnv()
	var gotFilter task.Filter
	e.tasks.listFunc = func(ctx context.Context, ownerID string, f task.Filter) ([]task.Task, error) {
		gotFilter = f
		return []task.Task{{ID: 1, Title: "Read"}}, nil
	}
	var gotDue *time.Time
	e.tasks.quickCreateFunc = func(ctx context.Context, ownerID string, in task.QuickCreateInput) (task.Task, task.Stats, error) {
		gotDue = in.DueDate
		return task.Task{ID: 2, Title: in.Title}, task.Stats{TotalTasks: 2, PendingTasks: 2}, nil
	}
	e.tasks.toggleFunc = func(ctx context.Context, ownerID string, id int64) (task.Status, task.Stats, error) {
		if ownerID != "owner-1" {
			return "", task.Stats{}, apperr.NotFound("Task", id)
		}
		return task.StatusDone, task.Stats{TotalTasks: 2, PendingTasks: 1, ProgressPercentage: 50}, nil
	}

	rec := e.do(httptest.NewRequest(http.MethodGet, "/tasks?filter=weekly", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(asUser(httptest.NewRequest(http.MethodGet, "/tasks?filter=weekly", nil), "owner-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, task.FilterWeekly, gotFilter)

	rec = e.do(asUser(formRequest(http.MethodPost, "/tasks", url.Values{"title": {"Write notes"}, "dueDate": {"2025-05-14"}}), "owner-1"))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, gotDue)
	assert.Equal(t, time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC), *gotDue)

	rec = e.do(asUser(httptest.NewRequest(http.MethodPost, "/tasks/2/toggle", nil), "owner-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Done", body["newStatus"])
	assert.Equal(t, float64(50), body["stats"].(map[string]any)["progressPercentage"])

	rec = e.do(asUser(httptest.NewRequest(http.MethodPost, "/tasks/2/toggle", nil), "someone-else"))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitJoinRequest_ValidationErrors(t *testing.T) {
	e := newTestEnv()
	v := validation.New()
	e.inquiries.submitJoinFunc = func(ctx context.Context, j inquiry.JoinRequest) (inquiry.JoinRequest, error) {
		if err := v.Struct(j); err != nil {
			return inquiry.JoinRequest{}, err
		}
		return j, nil
	}

	rec := e.do(formRequest(http.MethodPost, "/join-us", url.Values{"fullName": {"Omar"}, "email": {"nope"}}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeBody(t, rec)["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "motivation")
	assert.NotContains(t, errs, "portfolio")
}

func TestListContactMessages_RequiresManageUsers(t *testing.T) {
	e := newTestEnv()

	rec := e.do(httptest.NewRequest(http.MethodGet, "/contact", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(asUser(httptest.NewRequest(http.MethodGet, "/contact", nil), "a", roles.Admin))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBind_MalformedJSON(t *testing.T) {
	e := newTestEnv()

	rec := e.do(jsonRequest(http.MethodPost, "/contact", `{"name":`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["code"])
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEnv()
	require.Equal(t, http.StatusOK, e.do(httptest.NewRequest(http.MethodGet, "/products/1", nil)).Code)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	raw, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `portal_http_request_duration_seconds_count{method="GET",route="/products/{id}",status="200"} 1`)
}
