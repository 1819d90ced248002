package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lapakku/controllers"
	"lapakku/initializers"
	"lapakku/middleware"
)

// SetupRoutes wires every controller under /api. Routes with static
// prefixes (stats, number, user, seller) are registered before the
// parameterized ones so they are matched first.
func SetupRoutes(app *fiber.App, db *gorm.DB, config *initializers.Config) {
	userController := controllers.NewUserController(db, config)
	productController := controllers.NewProductController(db)
	cartController := controllers.NewCartController(db)
	orderController := controllers.NewOrderController(db, config)
	transactionController := controllers.NewTransactionController(db)

	requireAuth := middleware.RequireAuth(db, config)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", userController.Register)
	users.Post("/login", userController.Login)
	users.Get("/", userController.GetAllUsers)
	users.Get("/:id", userController.GetUserByID)
	users.Put("/:id", userController.UpdateUser)
	users.Post("/:id/change-password", userController.ChangePassword)
	users.Delete("/:id", userController.DeleteUser)
	users.Patch("/:id/deactivate", userController.DeactivateUser)
	users.Patch("/:id/activate", userController.ActivateUser)

	products := api.Group("/products")
	products.Get("/", productController.GetAllProducts)
	products.Get("/stats", productController.GetProductStats)
	products.Get("/seller/:seller_id", productController.GetProductsBySellerID)
	products.Get("/category/:category", productController.GetProductsByCategory)
	products.Get("/search/:keyword", productController.SearchProducts)
	products.Get("/my/products", requireAuth, productController.GetMyProducts)
	products.Get("/:id", productController.GetProductByID)
	products.Post("/", requireAuth, productController.CreateProduct)
	products.Put("/:id", requireAuth, productController.UpdateProduct)
	products.Patch("/:id/stock", productController.UpdateProductStock)
	products.Patch("/:id/rating", productController.UpdateProductRating)
	products.Patch("/:id/activate", productController.ActivateProduct)
	products.Patch("/:id/deactivate", productController.DeactivateProduct)
	products.Delete("/:id", requireAuth, productController.DeleteProduct)

	cart := api.Group("/cart")
	cart.Post("/", cartController.AddToCart)
	cart.Get("/user/:user_id/summary", cartController.GetCartSummary)
	cart.Get("/user/:user_id", cartController.GetCartByUserID)
	cart.Get("/:id", cartController.GetCartItemByID)
	cart.Put("/:id", cartController.UpdateCartItem)
	cart.Patch("/:id/quantity", cartController.UpdateCartQuantity)
	cart.Delete("/user/:user_id", cartController.ClearCart)
	cart.Delete("/:id", cartController.RemoveFromCart)

	orders := api.Group("/orders")
	orders.Post("/", orderController.CreateOrder)
	orders.Post("/from-cart", orderController.CreateOrderFromCart)
	orders.Get("/", orderController.GetAllOrders)
	orders.Get("/stats", orderController.GetOrderStats)
	orders.Get("/number/:order_number", orderController.GetOrderByNumber)
	orders.Get("/user/:user_id", orderController.GetOrdersByUserID)
	orders.Get("/:id", orderController.GetOrderByID)
	orders.Patch("/:id/status", orderController.UpdateOrderStatus)
	orders.Patch("/:id/cancel", orderController.CancelOrder)
	orders.Put("/:id", orderController.UpdateOrder)
	orders.Delete("/:id", orderController.DeleteOrder)

	transactions := api.Group("/transactions")
	transactions.Post("/", transactionController.CreateTransaction)
	transactions.Get("/", transactionController.GetAllTransactions)
	transactions.Get("/stats", transactionController.GetTransactionStats)
	transactions.Get("/user/:user_id", transactionController.GetTransactionsByUserID)
	transactions.Get("/:id", transactionController.GetTransactionByID)
	transactions.Patch("/:id/status", transactionController.UpdateTransactionStatus)
	transactions.Put("/:id", transactionController.UpdateTransaction)
	transactions.Delete("/:id", transactionController.DeleteTransaction)
}
