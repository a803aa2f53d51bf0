package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prelaunch/internal/http/middleware"
	"prelaunch/internal/service"
)

// Deps are the collaborators RegisterRoutes wires into handlers.
type Deps struct {
	DB           Pinger
	Metrics      prometheus.Gatherer
	Admin        AdminGate
	SecureCookie bool

	Subscribers service.SubscriberService
	Products    service.ProductService
	Users       service.UserService
	Images      service.ImageService
	Blog        service.BlogService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: decode, call the service, map the result.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	admin := middleware.RequireAdmin(d.Admin)
	api := app.Group("/api")

	api.Post("/subscribe", Subscribe(d.Subscribers))
	api.Post("/unsubscribe", Unsubscribe(d.Subscribers))

	api.Post("/admin/login", AdminLogin(d.Admin, d.SecureCookie))
	api.Post("/admin/logout", AdminLogout(d.SecureCookie))
	api.Get("/admin/session", AdminSession(d.Admin))

	api.Get("/products", ListProducts(d.Products))
	api.Get("/products/slug/:slug", GetProductBySlug(d.Products))
	api.Get("/products/:id", GetProduct(d.Products))
	api.Post("/products", admin, CreateProduct(d.Products))
	api.Put("/products/:id", admin, UpdateProduct(d.Products))
	api.Delete("/products/:id", admin, DeleteProduct(d.Products))

	api.Post("/users/signup", Signup(d.Users))
	api.Post("/users/login", Login(d.Users))
	api.Get("/users", admin, ListUsers(d.Users))
	api.Get("/users/:id", admin, GetUser(d.Users))
	api.Put("/users/:id", admin, UpdateUser(d.Users))
	api.Delete("/users/:id", admin, DeleteUser(d.Users))

	subs := api.Group("/subscribers", admin)
	subs.Get("/", ListSubscribers(d.Subscribers))
	subs.Get("/stats", SubscriberStats(d.Subscribers))
	subs.Get("/:id", GetSubscriber(d.Subscribers))
	subs.Put("/:id", UpdateSubscriber(d.Subscribers))
	subs.Delete("/:id", DeleteSubscriber(d.Subscribers))

	api.Get("/images", ListImages(d.Images))
	api.Get("/images/:id", GetImage(d.Images))
	api.Get("/images/:id/url", ImageURL(d.Images))
	api.Post("/images", admin, UploadImage(d.Images))
	api.Put("/images/:id", admin, UpdateImage(d.Images))
	api.Delete("/images/:id", admin, DeleteImage(d.Images))

	api.Get("/blog/posts", ListBlogPosts(d.Blog, d.Admin))
	api.Get("/blog/posts/slug/:slug", GetBlogPostBySlug(d.Blog))
	api.Get("/blog/posts/:id", admin, GetBlogPost(d.Blog))
	api.Post("/blog/posts", admin, CreateBlogPost(d.Blog))
	api.Put("/blog/posts/:id", admin, UpdateBlogPost(d.Blog))
	api.Delete("/blog/posts/:id", admin, DeleteBlogPost(d.Blog))
}
