package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lapakku/initializers"
	"lapakku/models"
	"lapakku/utils"
)

type UserController struct {
	DB     *gorm.DB
	Config *initializers.Config
}

func NewUserController(db *gorm.DB, config *initializers.Config) UserController {
	return UserController{DB: db, Config: config}
}

func (uc UserController) Register(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	var existing models.User
	err := uc.DB.First(&existing, "username = ?", input.Username).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "username already taken"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"msg":   "failed to register",
			"error": err.Error(),
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"msg":   "failed to register",
			"error": err.Error(),
		})
	}

	role := input.Role
	if role == "" {
		role = "user"
	}

	user := models.User{
		Username: input.Username,
		Password: string(hashed),
		Role:     role,
		Email:    input.Email,
		Fullname: input.Fullname,
		Phone:    input.Phone,
		Address:  input.Address,
		IsActive: true,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"msg":   "failed to register",
			"error": err.Error(),
		})
	}

	if uc.Config.SMTPHost != "" && user.Email != nil {
		data := utils.EmailData{
			Subject: "Welcome to Lapakku",
			Payload: fiber.Map{"Username": user.Username},
		}
		if err := utils.SendEmail(uc.Config, *user.Email, &data, "welcome.html"); err != nil {
			log.Println("failed to send welcome email:", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":  "user created successfully",
		"data": models.FilterUserRecord(&user),
	})
}

func (uc UserController) Login(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	var user models.User
	if err := uc.DB.First(&user, "username = ?", input.Username).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "username not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "wrong password"})
	}

	token, err := utils.GenerateToken(uc.Config.JwtExpiresIn, user.ID, uc.Config.JwtSecret)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg": "login successful",
		"data": fiber.Map{
			"user":  models.FilterUserRecord(&user),
			"token": token,
		},
	})
}

func (uc UserController) GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		return errorResponse(c, err)
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, models.FilterUserRecord(&users[i]))
	}

	return c.JSON(fiber.Map{
		"msg":   "users retrieved successfully",
		"count": len(responses),
		"data":  responses,
	})
}

func (uc UserController) GetUserByID(c *fiber.Ctx) error {
	user, err := uc.findUser(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "user retrieved successfully",
		"data": models.FilterUserRecord(user),
	})
}

func (uc UserController) UpdateUser(c *fiber.Ctx) error {
	user, err := uc.findUser(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	var input models.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	if input.Email != nil {
		user.Email = input.Email
	}
	if input.Fullname != nil {
		user.Fullname = *input.Fullname
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}

	if err := uc.DB.Save(user).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "user updated successfully",
		"data": models.FilterUserRecord(user),
	})
}

func (uc UserController) ChangePassword(c *fiber.Ctx) error {
	user, err := uc.findUser(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	var input models.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "cannot parse request body"})
	}

	if err := models.ValidateStruct(&input); err != nil {
		return errorResponse(c, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "old password does not match"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errorResponse(c, err)
	}

	user.Password = string(hashed)
	if err := uc.DB.Save(user).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"msg": "password changed successfully"})
}

func (uc UserController) DeleteUser(c *fiber.Ctx) error {
	user, err := uc.findUser(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	if err := uc.DB.Delete(user).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"msg": "user deleted successfully"})
}

func (uc UserController) DeactivateUser(c *fiber.Ctx) error {
	return uc.setActive(c, false, "user deactivated successfully")
}

func (uc UserController) ActivateUser(c *fiber.Ctx) error {
	return uc.setActive(c, true, "user activated successfully")
}

func (uc UserController) setActive(c *fiber.Ctx, active bool, msg string) error {
	user, err := uc.findUser(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	user.IsActive = active
	if err := uc.DB.Save(user).Error; err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"msg": msg})
}

func (uc UserController) findUser(id string) (*models.User, error) {
	var user models.User
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Message: "user not found"}
		}
		return nil, err
	}
	return &user, nil
}
