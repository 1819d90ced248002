package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"lapakku/models"
)

type TransactionController struct {
	DB *gorm.DB
}

func NewTransactionController(db *gorm.DB) TransactionController {
	return TransactionController{DB: db}
}

// generateTransactionNumber builds TRX-<unix millis>-<8 uppercase hex>.
func generateTransactionNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewV4().String(), "-", "")[:8])
	return fmt.Sprintf("TRX-%d-%s", time.Now().UnixMilli(), suffix)
}

func (tc TransactionController) CreateTransaction(c *fiber.Ctx) error {
	var input models.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	var user models.User
	if err := tc.DB.First(&user, "id = ?", input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, &models.NotFoundError{Message: "user not found"})
		}
		return errorResponse(c, err)
	}

	if input.ProductID != nil {
		var product models.Product
		if err := tc.DB.First(&product, "id = ?", *input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorResponse(c, &models.NotFoundError{
					Message: fmt.Sprintf("product with id %d not found", *input.ProductID),
				})
			}
			return errorResponse(c, err)
		}
	}

	transaction := models.Transaction{
		UserID:            input.UserID,
		ProductID:         input.ProductID,
		Status:            models.TransactionStatusPending,
		TransactionNumber: generateTransactionNumber(),
		Notes:             input.Notes,
	}

	if err := tc.DB.Create(&transaction).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "transaction created successfully",
		"data": transaction,
	})
}

func (tc TransactionController) GetAllTransactions(c *fiber.Ctx) error {
	var transactions []models.Transaction
	if err := tc.DB.Order("created_at DESC").Find(&transactions).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":   "transactions retrieved successfully",
		"count": len(transactions),
		"data":  transactions,
	})
}

func (tc TransactionController) GetTransactionByID(c *fiber.Ctx) error {
	transaction, err := tc.findTransaction(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "transaction retrieved successfully",
		"data": transaction,
	})
}

func (tc TransactionController) GetTransactionsByUserID(c *fiber.Ctx) error {
	var transactions []models.Transaction
	err := tc.DB.Where("user_id = ?", c.Params("user_id")).
		Order("created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":   "user transactions retrieved successfully",
		"count": len(transactions),
		"data":  transactions,
	})
}

// UpdateTransactionStatus stores a new lifecycle status. Moving to
// success stamps paid_at once; repeating the move keeps the original
// timestamp.
func (tc TransactionController) UpdateTransactionStatus(c *fiber.Ctx) error {
	var input models.UpdateTransactionStatusInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	transaction, err := tc.findTransaction(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	newStatus := models.TransactionStatus(input.Status)
	if !newStatus.Valid() {
		return errorResponse(c, &models.ValidationError{
			Message: fmt.Sprintf("unknown transaction status: %s", input.Status),
		})
	}

	if newStatus == models.TransactionStatusSuccess && transaction.PaidAt == nil {
		now := time.Now()
		transaction.PaidAt = &now
	}
	transaction.Status = newStatus

	if err := tc.DB.Save(transaction).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "transaction status updated successfully",
		"data": transaction,
	})
}

func (tc TransactionController) UpdateTransaction(c *fiber.Ctx) error {
	transaction, err := tc.findTransaction(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	var input models.UpdateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if input.ProductID != nil {
		var product models.Product
		if err := tc.DB.First(&product, "id = ?", *input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorResponse(c, &models.NotFoundError{
					Message: fmt.Sprintf("product with id %d not found", *input.ProductID),
				})
			}
			return errorResponse(c, err)
		}
		transaction.ProductID = input.ProductID
	}
	if input.Notes != nil {
		transaction.Notes = *input.Notes
	}

	if err := tc.DB.Save(transaction).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "transaction updated successfully",
		"data": transaction,
	})
}

func (tc TransactionController) DeleteTransaction(c *fiber.Ctx) error {
	transaction, err := tc.findTransaction(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	if err := tc.DB.Delete(transaction).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"msg": "transaction deleted successfully"})
}

func (tc TransactionController) GetTransactionStats(c *fiber.Ctx) error {
	var stats models.TransactionStats

	if err := tc.DB.Model(&models.Transaction{}).Count(&stats.TotalTransactions).Error; err != nil {
		return errorResponse(c, err)
	}

	counts := map[models.TransactionStatus]*int64{
		models.TransactionStatusPending:    &stats.PendingCount,
		models.TransactionStatusProcessing: &stats.ProcessingCount,
		models.TransactionStatusSuccess:    &stats.SuccessCount,
		models.TransactionStatusFailed:     &stats.FailedCount,
		models.TransactionStatusCancelled:  &stats.CancelledCount,
	}
	for status, dst := range counts {
		if err := tc.DB.Model(&models.Transaction{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return errorResponse(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"msg":  "transaction statistics retrieved successfully",
		"data": stats,
	})
}

func (tc TransactionController) findTransaction(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := tc.DB.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Message: "transaction not found"}
		}
		return nil, err
	}
	return &transaction, nil
}
