package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/metrics"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/middleware"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/roles"
)

type Deps struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Roles   *roles.Registry

	JWTSecret        string
	SecureCookies    bool
	CORSAllowOrigins []string

	Products  ProductService
	Carts     CartService
	Orders    OrderService
	Courses   CourseService
	Tasks     TaskService
	Inquiries InquiryService
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger.Named("http")
	h := &Handler{
		logger:    logger,
		roles:     d.Roles,
		products:  d.Products,
		carts:     d.Carts,
		orders:    d.Orders,
		courses:   d.Courses,
		tasks:     d.Tasks,
		inquiries: d.Inquiries,
	}
	can := func(perms ...string) func(http.Handler) http.Handler {
		return middleware.RequirePermission(d.Roles, perms...)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recover(logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.CORS(d.CORSAllowOrigins))
	r.Use(middleware.Session(d.SecureCookies))
	r.Use(middleware.Authenticate(d.JWTSecret))

	r.Get("/health", h.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Group(func(r chi.Router) {
			r.Use(can(roles.PermManageProducts))
			r.Post("/", h.CreateProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
			r.Post("/{id}/stock", h.AdjustStock)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/add", h.AddToCart)
		r.Post("/update", h.UpdateCart)
		r.Post("/remove", h.RemoveFromCart)
	})

	r.Get("/checkout", h.Checkout)
	r.Post("/checkout/process", h.ProcessCheckout)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/confirmation", h.OrderConfirmation)
		r.With(middleware.RequireAuth).Get("/mine", h.MyOrders)
		r.Group(func(r chi.Router) {
			r.Use(can(roles.PermManageOrders))
			r.Get("/", h.ListOrders)
			r.Get("/{id}", h.GetOrder)
			r.Post("/{id}/status", h.UpdateOrderStatus)
		})
	})

	r.With(middleware.RequireAuth).Get("/profile", h.Profile)
	r.With(can(roles.PermManageRoles)).Get("/roles", h.ListRoles)

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.ListCourses)
		r.Get("/{id}", h.GetCourse)
		r.With(can(roles.PermManageCourses, roles.PermCreateCourseContent)).Post("/", h.CreateCourse)
		r.With(can(roles.PermManageCourses, roles.PermCreateCourseContent)).Put("/{id}", h.UpdateCourse)
		r.With(can(roles.PermManageCourses)).Delete("/{id}", h.DeleteCourse)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/dashboard", h.TaskDashboard)
		r.Get("/", h.ListTasks)
		r.Post("/", h.QuickCreateTask)
		r.Put("/{id}", h.UpdateTask)
		r.Post("/{id}/toggle", h.ToggleTask)
		r.Delete("/{id}", h.DeleteTask)
	})

	r.Post("/join-us", h.SubmitJoinRequest)
	r.With(can(roles.PermManageUsers)).Get("/join-us", h.ListJoinRequests)
	r.Post("/contact", h.SubmitContact)
	r.With(can(roles.PermManageUsers)).Get("/contact", h.ListContactMessages)

	return r
}
