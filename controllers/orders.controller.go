package controllers

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lapakku/initializers"
	"lapakku/models"
	"lapakku/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Config *initializers.Config
}

func NewOrderController(db *gorm.DB, config *initializers.Config) OrderController {
	return OrderController{DB: db, Config: config}
}

const orderNumberCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNumber builds ORD-<unix millis>-<5 uppercase alnum>.
// Uniqueness is not checked against existing rows; the unique index on
// order_number is the backstop.
func generateOrderNumber() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = orderNumberCharset[rand.Intn(len(orderNumberCharset))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// CreateOrderFromCart converts the user's cart into an order. The order,
// its items and the cart clear happen inside one transaction so a crash
// cannot leave an order without items or a half-cleared cart.
func (oc OrderController) CreateOrderFromCart(c *fiber.Ctx) error {
	var input models.CreateOrderFromCartInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	var user models.User
	if err := oc.DB.First(&user, "id = ?", input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "user not found"})
		}
		return errorResponse(c, err)
	}

	var cartItems []models.CartItem
	if err := oc.DB.Preload("Product").Where("user_id = ?", input.UserID).Find(&cartItems).Error; err != nil {
		return errorResponse(c, err)
	}

	if len(cartItems) == 0 {
		return errorResponse(c, &models.EmptyCartError{})
	}

	var totalPrice float64
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		// The cart line may outlive its product; a nil Product here means
		// the product row is gone.
		if cartItem.Product == nil {
			return errorResponse(c, &models.NotFoundError{
				Message: fmt.Sprintf("product with id %d not found", cartItem.ProductID),
			})
		}
		totalPrice += cartItem.Product.Price * float64(cartItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			Price:     cartItem.Product.Price,
		})
	}

	shippingPhone := input.ShippingPhone
	if shippingPhone == "" {
		shippingPhone = user.Phone
	}

	order := models.Order{
		UserID:          input.UserID,
		OrderNumber:     generateOrderNumber(),
		TotalPrice:      totalPrice,
		FinalPrice:      totalPrice,
		ShippingAddress: input.ShippingAddress,
		ShippingPhone:   shippingPhone,
		Notes:           input.Notes,
		Status:          models.OrderStatusPending,
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.CreateInBatches(&orderItems, len(orderItems)).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", input.UserID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return errorResponse(c, err)
	}

	order.Items = orderItems
	oc.sendOrderConfirmation(&user, &order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "order created successfully",
		"data": order,
	})
}

// CreateOrder builds an order from an explicit item list. Line prices are
// the current catalog prices, frozen into the order items.
func (oc OrderController) CreateOrder(c *fiber.Ctx) error {
	var input models.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	var user models.User
	if err := oc.DB.First(&user, "id = ?", input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "user not found"})
		}
		return errorResponse(c, err)
	}

	var totalPrice float64
	orderItems := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		var product models.Product
		if err := oc.DB.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorResponse(c, &models.NotFoundError{
					Message: fmt.Sprintf("product with id %d not found", item.ProductID),
				})
			}
			return errorResponse(c, err)
		}
		totalPrice += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	shippingPhone := input.ShippingPhone
	if shippingPhone == "" {
		shippingPhone = user.Phone
	}

	// A discount larger than total + shipping yields a negative final
	// price; that is accepted as-is.
	order := models.Order{
		UserID:          input.UserID,
		OrderNumber:     generateOrderNumber(),
		TotalPrice:      totalPrice,
		ShippingCost:    input.ShippingCost,
		Discount:        input.Discount,
		FinalPrice:      totalPrice + input.ShippingCost - input.Discount,
		ShippingAddress: input.ShippingAddress,
		ShippingPhone:   shippingPhone,
		Notes:           input.Notes,
		Status:          models.OrderStatusPending,
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		return tx.CreateInBatches(&orderItems, len(orderItems)).Error
	})
	if err != nil {
		return errorResponse(c, err)
	}

	order.Items = orderItems
	oc.sendOrderConfirmation(&user, &order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "order created successfully",
		"data": order,
	})
}

func (oc OrderController) GetAllOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := oc.DB.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":   "orders retrieved successfully",
		"count": len(orders),
		"data":  orders,
	})
}

func (oc OrderController) GetOrderByID(c *fiber.Ctx) error {
	var order models.Order
	err := oc.DB.Preload("Items.Product").First(&order, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "order not found"})
		}
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "order retrieved successfully",
		"data": order,
	})
}

func (oc OrderController) GetOrderByNumber(c *fiber.Ctx) error {
	var order models.Order
	err := oc.DB.Preload("Items.Product").First(&order, "order_number = ?", c.Params("order_number")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "order not found"})
		}
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "order retrieved successfully",
		"data": order,
	})
}

func (oc OrderController) GetOrdersByUserID(c *fiber.Ctx) error {
	var orders []models.Order
	err := oc.DB.Preload("Items").
		Where("user_id = ?", c.Params("user_id")).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return errorResponse(c, err)
	}

	if len(orders) == 0 {
		return errorResponse(c, &models.NotFoundError{Message: "no orders found for this user"})
	}

	return c.JSON(fiber.Map{
		"msg":   "user orders retrieved successfully",
		"count": len(orders),
		"data":  orders,
	})
}

// UpdateOrderStatus moves an order along its lifecycle. The shipped and
// delivered timestamps are stamped once and never overwritten, so
// repeating a transition is harmless.
func (oc OrderController) UpdateOrderStatus(c *fiber.Ctx) error {
	var input models.UpdateOrderStatusInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	order, err := oc.findOrder(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	newStatus := models.OrderStatus(input.Status)
	if !newStatus.Valid() {
		return errorResponse(c, &models.ValidationError{
			Message: fmt.Sprintf("unknown order status: %s", input.Status),
		})
	}

	if !models.CanTransition(order.Status, newStatus) {
		return errorResponse(c, &models.InvalidStateError{
			Message: fmt.Sprintf("cannot change order status from %s to %s", order.Status, newStatus),
		})
	}

	now := time.Now()
	if newStatus == models.OrderStatusShipped && order.ShippedAt == nil {
		order.ShippedAt = &now
	}
	if newStatus == models.OrderStatusDelivered && order.DeliveredAt == nil {
		order.DeliveredAt = &now
	}
	order.Status = newStatus

	if err := oc.DB.Save(order).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "order status updated successfully",
		"data": order,
	})
}

// UpdateOrder merges the shipping/discount fields and recomputes the
// final price from the stored total. Line items are never re-priced.
func (oc OrderController) UpdateOrder(c *fiber.Ctx) error {
	order, err := oc.findOrder(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	var input models.UpdateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	if input.ShippingCost != nil {
		order.ShippingCost = *input.ShippingCost
	}
	if input.Discount != nil {
		order.Discount = *input.Discount
	}
	if input.ShippingAddress != nil {
		order.ShippingAddress = *input.ShippingAddress
	}
	if input.ShippingPhone != nil {
		order.ShippingPhone = *input.ShippingPhone
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	order.FinalPrice = order.TotalPrice + order.ShippingCost - order.Discount

	if err := oc.DB.Save(order).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "order updated successfully",
		"data": order,
	})
}

// CancelOrder sets the status to cancelled. Orders that already shipped
// cannot be cancelled. Stock is not restored.
func (oc OrderController) CancelOrder(c *fiber.Ctx) error {
	order, err := oc.findOrder(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	if order.Status == models.OrderStatusShipped || order.Status == models.OrderStatusDelivered {
		return errorResponse(c, &models.InvalidStateError{
			Message: "cannot cancel an order that has been shipped or delivered",
		})
	}

	order.Status = models.OrderStatusCancelled
	if err := oc.DB.Save(order).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "order cancelled successfully",
		"data": order,
	})
}

func (oc OrderController) DeleteOrder(c *fiber.Ctx) error {
	order, err := oc.findOrder(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(order).Error
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"msg": "order deleted successfully"})
}

func (oc OrderController) GetOrderStats(c *fiber.Ctx) error {
	var stats models.OrderStats

	if err := oc.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return errorResponse(c, err)
	}
	err := oc.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(final_price), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return errorResponse(c, err)
	}

	counts := map[models.OrderStatus]*int64{
		models.OrderStatusPending:    &stats.PendingCount,
		models.OrderStatusConfirmed:  &stats.ConfirmedCount,
		models.OrderStatusProcessing: &stats.ProcessingCount,
		models.OrderStatusShipped:    &stats.ShippedCount,
		models.OrderStatusDelivered:  &stats.DeliveredCount,
		models.OrderStatusCancelled:  &stats.CancelledCount,
	}
	for status, dst := range counts {
		if err := oc.DB.Model(&models.Order{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return errorResponse(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"msg":  "order statistics retrieved successfully",
		"data": stats,
	})
}

func (oc OrderController) findOrder(id string) (*models.Order, error) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Message: "order not found"}
		}
		return nil, err
	}
	return &order, nil
}

func (oc OrderController) sendOrderConfirmation(user *models.User, order *models.Order) {
	if oc.Config.SMTPHost == "" || user.Email == nil {
		return
	}

	data := utils.EmailData{
		Subject: fmt.Sprintf("Order %s confirmed", order.OrderNumber),
		Payload: fiber.Map{
			"Username":    user.Username,
			"OrderNumber": order.OrderNumber,
			"FinalPrice":  order.FinalPrice,
		},
	}
	if err := utils.SendEmail(oc.Config, *user.Email, &data, "order_confirmation.html"); err != nil {
		log.Println("failed to send order confirmation email:", err)
	}
}
