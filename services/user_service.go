package services

import (
	"errors"
	"strings"

	"github.com/302xdwill/NutriFlow/models"
	"github.com/302xdwill/NutriFlow/utils"
	"gorm.io/gorm"
)

// UserService is the active-user collaborator: registration, login
// and profile reads. The engine itself only ever consumes the user id
// this resolves from the request token.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates the account with the default goal set, both as
// goal rows and as the user projection, in one transaction.
func (s *UserService) Register(email, password, name, lastName string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, validationf("email must not be empty")
	}
	if password == "" {
		return nil, validationf("password must not be empty")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       email,
		Password:    hashed,
		Name:        name,
		LastName:    lastName,
		CalorieGoal: DefaultGoals.Calories,
		ProteinGoal: DefaultGoals.Protein,
		CarbsGoal:   DefaultGoals.Carbs,
		FatGoal:     DefaultGoals.Fat,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		for typ, value := range map[string]float64{
			models.GoalCalories: DefaultGoals.Calories,
			models.GoalProtein:  DefaultGoals.Protein,
			models.GoalCarbs:    DefaultGoals.Carbs,
			models.GoalFat:      DefaultGoals.Fat,
		} {
			if err := tx.Create(&models.Goal{UserID: user.ID, Type: typ, Value: value}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, persistence("register user", err)
	}
	return user, nil
}

// Authenticate checks the credentials and returns a signed token plus
// the user.
func (s *UserService) Authenticate(email, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.TrimSpace(strings.ToLower(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, validationf("invalid email or password")
	}
	if err != nil {
		return "", nil, persistence("load user", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, validationf("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// ByID returns (nil, nil) when no such user exists.
func (s *UserService) ByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("load user", err)
	}
	return &user, nil
}

type ProfileInput struct {
	Name     string  `json:"name"`
	LastName string  `json:"last_name"`
	Age      int     `json:"age"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	PhotoURL string  `json:"photo_url"`
}

func (s *UserService) UpdateProfile(id uint, input ProfileInput) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, validationf("user not found")
	}
	if err != nil {
		return nil, persistence("load user", err)
	}

	user.Name = input.Name
	user.LastName = input.LastName
	user.Age = input.Age
	user.Weight = input.Weight
	user.Height = input.Height
	user.PhotoURL = input.PhotoURL

	if err := s.db.Save(&user).Error; err != nil {
		return nil, persistence("update user", err)
	}
	return &user, nil
}
