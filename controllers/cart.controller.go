package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lapakku/models"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) CartController {
	return CartController{DB: db}
}

// AddToCart upserts a cart line: an existing (user, product) line gets
// its quantity incremented, otherwise a new line is created.
func (cc CartController) AddToCart(c *fiber.Ctx) error {
	var input models.AddToCartInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	var user models.User
	if err := cc.DB.First(&user, "id = ?", input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "user not found"})
		}
		return errorResponse(c, err)
	}

	var product models.Product
	if err := cc.DB.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "product not found"})
		}
		return errorResponse(c, err)
	}

	var item models.CartItem
	err := cc.DB.Where("user_id = ? AND product_id = ?", input.UserID, input.ProductID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += input.Quantity
		if err := cc.DB.Save(&item).Error; err != nil {
			return errorResponse(c, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:    input.UserID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		}
		if err := cc.DB.Create(&item).Error; err != nil {
			return errorResponse(c, err)
		}
	default:
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "item added to cart successfully",
		"data": item,
	})
}

func (cc CartController) GetCartByUserID(c *fiber.Ctx) error {
	var items []models.CartItem
	err := cc.DB.Preload("Product").
		Where("user_id = ?", c.Params("user_id")).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":   "cart retrieved successfully",
		"count": len(items),
		"data":  items,
	})
}

// GetCartSummary totals the cart using live catalog prices.
func (cc CartController) GetCartSummary(c *fiber.Ctx) error {
	var items []models.CartItem
	err := cc.DB.Preload("Product").Where("user_id = ?", c.Params("user_id")).Find(&items).Error
	if err != nil {
		return errorResponse(c, err)
	}

	summary := models.CartSummary{TotalItems: len(items)}
	for _, item := range items {
		summary.TotalQuantity += item.Quantity
		if item.Product != nil {
			summary.TotalPrice += item.Product.Price * float64(item.Quantity)
		}
	}

	return c.JSON(fiber.Map{
		"msg":  "cart summary retrieved successfully",
		"data": summary,
	})
}

func (cc CartController) GetCartItemByID(c *fiber.Ctx) error {
	var item models.CartItem
	err := cc.DB.Preload("Product").First(&item, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "cart item not found"})
		}
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "cart item retrieved successfully",
		"data": item,
	})
}

func (cc CartController) UpdateCartItem(c *fiber.Ctx) error {
	return cc.setQuantity(c)
}

func (cc CartController) UpdateCartQuantity(c *fiber.Ctx) error {
	return cc.setQuantity(c)
}

func (cc CartController) setQuantity(c *fiber.Ctx) error {
	var input models.UpdateCartQuantityInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	var item models.CartItem
	if err := cc.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "cart item not found"})
		}
		return errorResponse(c, err)
	}

	item.Quantity = input.Quantity
	if err := cc.DB.Save(&item).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "cart item updated successfully",
		"data": item,
	})
}

func (cc CartController) RemoveFromCart(c *fiber.Ctx) error {
	var item models.CartItem
	if err := cc.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "cart item not found"})
		}
		return errorResponse(c, err)
	}

	if err := cc.DB.Delete(&item).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"msg": "item removed from cart successfully"})
}

func (cc CartController) ClearCart(c *fiber.Ctx) error {
	err := cc.DB.Where("user_id = ?", c.Params("user_id")).Delete(&models.CartItem{}).Error
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"msg": "cart cleared successfully"})
}
