package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lapakku/models"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) ProductController {
	return ProductController{DB: db}
}

func (pc ProductController) CreateProduct(c *fiber.Ctx) error {
	var input models.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	var seller models.User
	if err := pc.DB.First(&seller, "id = ?", input.SellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "seller not found"})
		}
		return errorResponse(c, err)
	}

	product := models.Product{
		SellerID:    input.SellerID,
		Name:        input.Name,
		Price:       *input.Price,
		Description: input.Description,
		Category:    input.Category,
		Image:       input.Image,
		Stock:       *input.Stock,
		IsActive:    true,
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "product created successfully",
		"data": product,
	})
}

func (pc ProductController) GetAllProducts(c *fiber.Ctx) error {
	query := pc.DB.Model(&models.Product{}).Where("is_active = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		v, err := strconv.ParseFloat(minPrice, 64)
		if err != nil {
			return errorResponse(c, &models.ValidationError{Message: "invalid min_price"})
		}
		query = query.Where("price >= ?", v)
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		v, err := strconv.ParseFloat(maxPrice, 64)
		if err != nil {
			return errorResponse(c, &models.ValidationError{Message: "invalid max_price"})
		}
		query = query.Where("price <= ?", v)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	switch c.Query("sort") {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "rating":
		query = query.Order("rating DESC")
	case "sold":
		query = query.Order("sold DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":   "products retrieved successfully",
		"count": len(products),
		"data":  products,
	})
}

func (pc ProductController) GetProductByID(c *fiber.Ctx) error {
	product, err := pc.findProduct(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "product retrieved successfully",
		"data": product,
	})
}

func (pc ProductController) GetProductsBySellerID(c *fiber.Ctx) error {
	sellerID := c.Params("seller_id")

	var seller models.User
	if err := pc.DB.First(&seller, "id = ?", sellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "seller not found"})
		}
		return errorResponse(c, err)
	}

	var products []models.Product
	if err := pc.DB.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&products).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":   "seller products retrieved successfully",
		"count": len(products),
		"data":  products,
	})
}

func (pc ProductController) GetProductsByCategory(c *fiber.Ctx) error {
	var products []models.Product
	err := pc.DB.Where("category = ? AND is_active = ?", c.Params("category"), true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":   "category products retrieved successfully",
		"count": len(products),
		"data":  products,
	})
}

// SearchProducts matches the keyword against name and description.
func (pc ProductController) SearchProducts(c *fiber.Ctx) error {
	keyword := "%" + c.Params("keyword") + "%"

	var products []models.Product
	err := pc.DB.Where("is_active = ?", true).
		Where("name LIKE ? OR description LIKE ?", keyword, keyword).
		Order("rating DESC").
		Find(&products).Error
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":   "product search results",
		"count": len(products),
		"data":  products,
	})
}

func (pc ProductController) GetMyProducts(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.UserResponse)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "cannot get user information"})
	}

	var products []models.Product
	if err := pc.DB.Where("seller_id = ?", user.ID).Order("created_at DESC").Find(&products).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":   "my products retrieved successfully",
		"count": len(products),
		"data":  products,
	})
}

func (pc ProductController) UpdateProduct(c *fiber.Ctx) error {
	product, err := pc.findProduct(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	var input models.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if input.Price != nil && *input.Price < 0 {
		return errorResponse(c, &models.ValidationError{Message: "price must not be negative"})
	}
	if input.Stock != nil && *input.Stock < 0 {
		return errorResponse(c, &models.ValidationError{Message: "stock must not be negative"})
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := pc.DB.Save(product).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "product updated successfully",
		"data": product,
	})
}

func (pc ProductController) UpdateProductStock(c *fiber.Ctx) error {
	var input models.UpdateStockInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	product, err := pc.findProduct(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	switch input.Type {
	case "add":
		product.Stock += input.Quantity
	case "reduce":
		if product.Stock < input.Quantity {
			return errorResponse(c, &models.InsufficientStockError{Available: product.Stock})
		}
		product.Stock -= input.Quantity
	}

	if err := pc.DB.Save(product).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "product stock updated successfully",
		"data": product,
	})
}

func (pc ProductController) UpdateProductRating(c *fiber.Ctx) error {
	var input models.UpdateRatingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if input.Rating == nil {
		return errorResponse(c, &models.ValidationError{Message: "rating is required"})
	}
	if *input.Rating < 0 || *input.Rating > 5 {
		return errorResponse(c, &models.ValidationError{Message: "rating must be between 0 and 5"})
	}

	product, err := pc.findProduct(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	product.Rating = *input.Rating
	if err := pc.DB.Save(product).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "product rating updated successfully",
		"data": product,
	})
}

func (pc ProductController) ActivateProduct(c *fiber.Ctx) error {
	return pc.setActive(c, true, "product activated successfully")
}

func (pc ProductController) DeactivateProduct(c *fiber.Ctx) error {
	return pc.setActive(c, false, "product deactivated successfully")
}

func (pc ProductController) setActive(c *fiber.Ctx, active bool, msg string) error {
	product, err := pc.findProduct(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	product.IsActive = active
	if err := pc.DB.Save(product).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"msg": msg})
}

func (pc ProductController) DeleteProduct(c *fiber.Ctx) error {
	product, err := pc.findProduct(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	if err := pc.DB.Delete(product).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"msg": "product deleted successfully"})
}

func (pc ProductController) GetProductStats(c *fiber.Ctx) error {
	var stats models.ProductStats

	if err := pc.DB.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return errorResponse(c, err)
	}
	if err := pc.DB.Model(&models.Product{}).Where("is_active = ?", true).Count(&stats.TotalActive).Error; err != nil {
		return errorResponse(c, err)
	}
	if err := pc.DB.Model(&models.Product{}).Where("is_active = ?", false).Count(&stats.TotalInactive).Error; err != nil {
		return errorResponse(c, err)
	}
	if err := pc.DB.Model(&models.Product{}).Select("COALESCE(AVG(price), 0)").Scan(&stats.AvgPrice).Error; err != nil {
		return errorResponse(c, err)
	}
	if err := pc.DB.Model(&models.Product{}).Select("COALESCE(SUM(stock), 0)").Scan(&stats.TotalStock).Error; err != nil {
		return errorResponse(c, err)
	}
	if err := pc.DB.Model(&models.Product{}).Select("COALESCE(SUM(sold), 0)").Scan(&stats.TotalSold).Error; err != nil {
		return errorResponse(c, err)
	}
	if err := pc.DB.Order("rating DESC").Limit(5).Find(&stats.TopRated).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "product statistics retrieved successfully",
		"data": stats,
	})
}

func (pc ProductController) findProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := pc.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Message: fmt.Sprintf("product with id %s not found", id)}
		}
		return nil, err
	}
	return &product, nil
}
