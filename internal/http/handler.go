package httpapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/cart"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/catalog"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/course"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/inquiry"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/order"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/roles"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/task"
)

type ProductService interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, id int64) (catalog.Product, error)
	Create(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	Update(ctx context.Context, id int64, in catalog.ProductInput) (catalog.Product, error)
	Delete(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, stock int) error
}

type CartService interface {
	Get(ctx context.Context, sessionID string) (cart.Cart, error)
	Add(ctx context.Context, sessionID string, productID int64, quantity int, size string) (cart.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, size string, quantity int) (cart.Cart, error)
	Remove(ctx context.Context, sessionID string, productID int64, size string) (cart.Cart, error)
}

type OrderService interface {
	Preview(ctx context.Context, sessionID string) (order.Summary, error)
	Process(ctx context.Context, sessionID, userID string, shipping order.ShippingDetails) (order.Confirmation, error)
	ListAll(ctx context.Context) ([]order.Order, error)
	ListByUser(ctx context.Context, userID string) ([]order.Order, error)
	Get(ctx context.Context, id int64) (order.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type CourseService interface {
	List(ctx context.Context) ([]course.Course, error)
	Get(ctx context.Context, id int64) (course.Course, error)
	Create(ctx context.Context, in course.Input) (course.Course, error)
	Update(ctx context.Context, id int64, in course.Input) (course.Course, error)
	Delete(ctx context.Context, id int64) error
}

type TaskService interface {
	Dashboard(ctx context.Context, ownerID string) (task.Stats, error)
	List(ctx context.Context, ownerID string, f task.Filter) ([]task.Task, error)
	QuickCreate(ctx context.Context, ownerID string, in task.QuickCreateInput) (task.Task, task.Stats, error)
	Update(ctx context.Context, ownerID string, id int64, in task.UpdateInput) (task.Task, error)
	Toggle(ctx context.Context, ownerID string, id int64) (task.Status, task.Stats, error)
	Delete(ctx context.Context, ownerID string, id int64) (task.Stats, error)
}

type InquiryService interface {
	SubmitJoinRequest(ctx context.Context, j inquiry.JoinRequest) (inquiry.JoinRequest, error)
	ListJoinRequests(ctx context.Context) ([]inquiry.JoinRequest, error)
	SubmitContactMessage(ctx context.Context, m inquiry.ContactMessage) (inquiry.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]inquiry.ContactMessage, error)
}

type Handler struct {
	logger    *zap.Logger
	roles     *roles.Registry
	products  ProductService
	carts     CartService
	orders    OrderService
	courses   CourseService
	tasks     TaskService
	inquiries InquiryService
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "portal",
	})
}
