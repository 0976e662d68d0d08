package httpapi

import (
	"context"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/cart"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/catalog"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/course"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/inquiry"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/order"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/task"
)

type fakeProducts struct {
	listFunc   func(ctx context.Context) ([]catalog.Product, error)
	getFunc    func(ctx context.Context, id int64) (catalog.Product, error)
	createFunc func(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (f *fakeProducts) List(ctx context.Context) ([]catalog.Product, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return []catalog.Product{}, nil
}

func (f *fakeProducts) Get(ctx context.Context, id int64) (catalog.Product, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, id)
	}
	return catalog.Product{ID: id}, nil
}

func (f *fakeProducts) Create(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, in)
	}
	return catalog.Product{ID: 1, Name: in.Name, Price: in.Price, Stock: in.Stock}, nil
}

func (f *fakeProducts) Update(ctx context.Context, id int64, in catalog.ProductInput) (catalog.Product, error) {
	return catalog.Product{ID: id, Name: in.Name}, nil
}

func (f *fakeProducts) Delete(ctx context.Context, id int64) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id)
	}
	return nil
}

func (f *fakeProducts) AdjustStock(ctx context.Context, id int64, stock int) error { return nil }

type fakeCarts struct {
	addFunc func(ctx context.Context, sessionID string, productID int64, quantity int, size string) (cart.Cart, error)
}

func (f *fakeCarts) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	return cart.Cart{Lines: []cart.Line{}}, nil
}

func (f *fakeCarts) Add(ctx context.Context, sessionID string, productID int64, quantity int, size string) (cart.Cart, error) {
	if f.addFunc != nil {
		return f.addFunc(ctx, sessionID, productID, quantity, size)
	}
	return cart.Cart{}, nil
}

func (f *fakeCarts) UpdateQuantity(ctx context.Context, sessionID string, productID int64, size string, quantity int) (cart.Cart, error) {
	return cart.Cart{}, nil
}

func (f *fakeCarts) Remove(ctx context.Context, sessionID string, productID int64, size string) (cart.Cart, error) {
	return cart.Cart{}, nil
}

type fakeOrders struct {
	previewFunc      func(ctx context.Context, sessionID string) (order.Summary, error)
	processFunc      func(ctx context.Context, sessionID, userID string, shipping order.ShippingDetails) (order.Confirmation, error)
	listAllFunc      func(ctx context.Context) ([]order.Order, error)
	listByUserFunc   func(ctx context.Context, userID string) ([]order.Order, error)
	updateStatusFunc func(ctx context.Context, id int64, status string) error
}

func (f *fakeOrders) Preview(ctx context.Context, sessionID string) (order.Summary, error) {
	if f.previewFunc != nil {
		return f.previewFunc(ctx, sessionID)
	}
	return order.Summary{}, nil
}

func (f *fakeOrders) Process(ctx context.Context, sessionID, userID string, shipping order.ShippingDetails) (order.Confirmation, error) {
	if f.processFunc != nil {
		return f.processFunc(ctx, sessionID, userID, shipping)
	}
	return order.Confirmation{}, nil
}

func (f *fakeOrders) ListAll(ctx context.Context) ([]order.Order, error) {
	if f.listAllFunc != nil {
		return f.listAllFunc(ctx)
	}
	return []order.Order{}, nil
}

func (f *fakeOrders) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	if f.listByUserFunc != nil {
		return f.listByUserFunc(ctx, userID)
	}
	return []order.Order{}, nil
}

func (f *fakeOrders) Get(ctx context.Context, id int64) (order.Order, error) {
	return order.Order{ID: id}, nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, id int64, status string) error {
	if f.updateStatusFunc != nil {
		return f.updateStatusFunc(ctx, id, status)
	}
	return nil
}

type fakeCourses struct {
	createFunc func(ctx context.Context, in course.Input) (course.Course, error)
}

func (f *fakeCourses) List(ctx context.Context) ([]course.Course, error) { return []course.Course{}, nil }

func (f *fakeCourses) Get(ctx context.Context, id int64) (course.Course, error) {
	return course.Course{ID: id}, nil
}

func (f *fakeCourses) Create(ctx context.Context, in course.Input) (course.Course, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, in)
	}
	return course.Course{ID: 1, Title: in.Title}, nil
}

func (f *fakeCourses) Update(ctx context.Context, id int64, in course.Input) (course.Course, error) {
	return course.Course{ID: id, Title: in.Title}, nil
}

func (f *fakeCourses) Delete(ctx context.Context, id int64) error { return nil }

type fakeTasks struct {
	listFunc        func(ctx context.Context, ownerID string, f task.Filter) ([]task.Task, error)
	quickCreateFunc func(ctx context.Context, ownerID string, in task.QuickCreateInput) (task.Task, task.Stats, error)
	toggleFunc      func(ctx context.Context, ownerID string, id int64) (task.Status, task.Stats, error)
}

func (f *fakeTasks) Dashboard(ctx context.Context, ownerID string) (task.Stats, error) {
	return task.Stats{}, nil
}

func (f *fakeTasks) List(ctx context.Context, ownerID string, filter task.Filter) ([]task.Task, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, ownerID, filter)
	}
	return []task.Task{}, nil
}

func (f *fakeTasks) QuickCreate(ctx context.Context, ownerID string, in task.QuickCreateInput) (task.Task, task.Stats, error) {
	if f.quickCreateFunc != nil {
		return f.quickCreateFunc(ctx, ownerID, in)
	}
	return task.Task{}, task.Stats{}, nil
}

func (f *fakeTasks) Update(ctx context.Context, ownerID string, id int64, in task.UpdateInput) (task.Task, error) {
	return task.Task{ID: id}, nil
}

func (f *fakeTasks) Toggle(ctx context.Context, ownerID string, id int64) (task.Status, task.Stats, error) {
	if f.toggleFunc != nil {
		return f.toggleFunc(ctx, ownerID, id)
	}
	return task.StatusDone, task.Stats{}, nil
}

func (f *fakeTasks) Delete(ctx context.Context, ownerID string, id int64) (task.Stats, error) {
	return task.Stats{}, nil
}

type fakeInquiries struct {
	submitJoinFunc func(ctx context.Context, j inquiry.JoinRequest) (inquiry.JoinRequest, error)
}

func (f *fakeInquiries) SubmitJoinRequest(ctx context.Context, j inquiry.JoinRequest) (inquiry.JoinRequest, error) {
	if f.submitJoinFunc != nil {
		return f.submitJoinFunc(ctx, j)
	}
	j.ID = 1
	return j, nil
}

func (f *fakeInquiries) ListJoinRequests(ctx context.Context) ([]inquiry.JoinRequest, error) {
	return []inquiry.JoinRequest{}, nil
}

func (f *fakeInquiries) SubmitContactMessage(ctx context.Context, m inquiry.ContactMessage) (inquiry.ContactMessage, error) {
	m.ID = 1
	return m, nil
}

func (f *fakeInquiries) ListContactMessages(ctx context.Context) ([]inquiry.ContactMessage, error) {
	return []inquiry.ContactMessage{}, nil
}
