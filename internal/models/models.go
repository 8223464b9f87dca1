// Package models provides canonical type definitions for PetCare API entities.
// These types are used throughout the client and CLI for API requests and responses.
package models

// UserProfile is the cached profile of the authenticated user.
// It is overwritten wholesale on each login, never partially merged.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Picture   string `json:"picture,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
	Source    string `json:"source"` // "email" or "google"
}

// LoginResult is the payload of a successful login or token refresh.
type LoginResult struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	TokenType    string      `json:"token_type,omitempty"`
	ExpiresIn    int64       `json:"expires_in,omitempty"`
	User         UserProfile `json:"user"`
}

// SignupRequest is the body for POST /user/create.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UpdateProfileRequest is the body for POST /user/update (partial update).
type UpdateProfileRequest struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// ResetPasswordRequest is the body for POST /user/reset_password.
type ResetPasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Pet types and genders as the backend enumerates them.
const (
	PetTypeDog    = "dog"
	PetTypeCat    = "cat"
	PetTypeBird   = "bird"
	PetTypeFish   = "fish"
	PetTypeRabbit = "rabbit"
	PetTypeOther  = "other"
)

// Pet represents a pet owned by a user and assigned to a group.
type Pet struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	PetType            string   `json:"pet_type"`
	Breed              string   `json:"breed,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	BirthDate          int64    `json:"birth_date,omitempty"`
	CurrentWeightKg    *float64 `json:"current_weight_kg,omitempty"`
	TargetWeightKg     *float64 `json:"target_weight_kg,omitempty"`
	HeightCm           *float64 `json:"height_cm,omitempty"`
	IsSpayed           *bool    `json:"is_spayed,omitempty"`
	MicrochipID        string   `json:"microchip_id,omitempty"`
	DailyCalorieTarget *int     `json:"daily_calorie_target,omitempty"`
	OwnerID            string   `json:"owner_id"`
	OwnerName          string   `json:"owner_name,omitempty"`
	GroupID            string   `json:"group_id,omitempty"`
	CurrentGroupName   string   `json:"current_group_name,omitempty"`
	CreatedAt          int64    `json:"created_at"`
	UpdatedAt          int64    `json:"updated_at,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	IsOwnedByUser      bool     `json:"is_owned_by_user,omitempty"`
	UserPermission     string   `json:"user_permission,omitempty"` // "owner", "member", "viewer"
}

// CreatePetRequest is the body for POST /pets/.
type CreatePetRequest struct {
	Name               string   `json:"name"`
	PetType            string   `json:"pet_type"`
	Breed              string   `json:"breed,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	BirthDate          int64    `json:"birth_date,omitempty"`
	CurrentWeightKg    *float64 `json:"current_weight_kg,omitempty"`
	TargetWeightKg     *float64 `json:"target_weight_kg,omitempty"`
	HeightCm           *float64 `json:"height_cm,omitempty"`
	IsSpayed           *bool    `json:"is_spayed,omitempty"`
	MicrochipID        string   `json:"microchip_id,omitempty"`
	DailyCalorieTarget *int     `json:"daily_calorie_target,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

// UpdatePetRequest is the body for POST /pets/{id}/update. All fields are
// optional; omitted fields are left unchanged by the server.
type UpdatePetRequest struct {
	Name               string   `json:"name,omitempty"`
	Breed              string   `json:"breed,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	BirthDate          int64    `json:"birth_date,omitempty"`
	CurrentWeightKg    *float64 `json:"current_weight_kg,omitempty"`
	TargetWeightKg     *float64 `json:"target_weight_kg,omitempty"`
	HeightCm           *float64 `json:"height_cm,omitempty"`
	IsSpayed           *bool    `json:"is_spayed,omitempty"`
	MicrochipID        string   `json:"microchip_id,omitempty"`
	DailyCalorieTarget *int     `json:"daily_calorie_target,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

// GroupAssignment describes a pet's current group assignment.
type GroupAssignment struct {
	PetID            string `json:"pet_id"`
	PetName          string `json:"pet_name"`
	GroupID          string `json:"group_id,omitempty"`
	CurrentGroupName string `json:"current_group_name,omitempty"`
	MemberCount      int    `json:"member_count,omitempty"`
	UserRoleInGroup  string `json:"user_role_in_group,omitempty"`
	AssignedAt       int64  `json:"assigned_at,omitempty"`
}

// Food represents a food item in a group's shared food database.
// Nutritional values are per 100g; protein/fat/moisture/carbohydrate are
// percentages.
type Food struct {
	ID           string  `json:"id"`
	CreatorID    string  `json:"creator_id,omitempty"`
	GroupID      string  `json:"group_id,omitempty"`
	Brand        string  `json:"brand"`
	ProductName  string  `json:"product_name"`
	FoodType     string  `json:"food_type"`   // "wet_food" or "dry_food"
	TargetPet    string  `json:"target_pet"`  // species the food is made for
	UnitWeight   float64 `json:"unit_weight"` // grams per unit (can, cup, ...)
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Moisture     float64 `json:"moisture"`
	Carbohydrate float64 `json:"carbohydrate"`
	CreatedAt    int64   `json:"created_at,omitempty"`
	UpdatedAt    int64   `json:"updated_at,omitempty"`
}

// CreateFoodRequest is the body for POST /foods/create.
type CreateFoodRequest struct {
	Brand        string  `json:"brand"`
	ProductName  string  `json:"product_name"`
	FoodType     string  `json:"food_type"`
	TargetPet    string  `json:"target_pet"`
	UnitWeight   float64 `json:"unit_weight"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Moisture     float64 `json:"moisture"`
	Carbohydrate float64 `json:"carbohydrate"`
}

// UpdateFoodRequest is the body for POST /foods/{id}/update (partial update).
type UpdateFoodRequest struct {
	Brand        string   `json:"brand,omitempty"`
	ProductName  string   `json:"product_name,omitempty"`
	FoodType     string   `json:"food_type,omitempty"`
	TargetPet    string   `json:"target_pet,omitempty"`
	UnitWeight   *float64 `json:"unit_weight,omitempty"`
	Calories     *float64 `json:"calories,omitempty"`
	Protein      *float64 `json:"protein,omitempty"`
	Fat          *float64 `json:"fat,omitempty"`
	Moisture     *float64 `json:"moisture,omitempty"`
	Carbohydrate *float64 `json:"carbohydrate,omitempty"`
}

// Meal types and serving input methods.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"

	ServingUnits = "units" // cans, pieces, cups
	ServingGrams = "grams" // direct weight input
)

// Meal is a feeding record for a pet within a group. Nutritional totals are
// computed server-side from the food's per-100g values and the actual weight.
type Meal struct {
	ID            string  `json:"id"`
	PetID         string  `json:"pet_id"`
	PetName       string  `json:"pet_name,omitempty"`
	FoodID        string  `json:"food_id"`
	FoodName      string  `json:"food_name,omitempty"`
	FedBy         string  `json:"fed_by,omitempty"`
	FedByName     string  `json:"fed_by_name,omitempty"`
	GroupID       string  `json:"group_id,omitempty"`
	FedAt         string  `json:"fed_at"`
	MealType      string  `json:"meal_type,omitempty"`
	ServingType   string  `json:"serving_type"`
	ServingAmount float64 `json:"serving_amount"`
	ActualWeightG float64 `json:"actual_weight_g,omitempty"`
	Calories      float64 `json:"calories,omitempty"`
	ProteinG      float64 `json:"protein_g,omitempty"`
	FatG          float64 `json:"fat_g,omitempty"`
	MoistureG     float64 `json:"moisture_g,omitempty"`
	CarbohydrateG float64 `json:"carbohydrate_g,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// CreateMealRequest is the body for POST /meals.
type CreateMealRequest struct {
	PetID         string  `json:"pet_id"`
	FoodID        string  `json:"food_id"`
	FedAt         string  `json:"fed_at,omitempty"`
	MealType      string  `json:"meal_type,omitempty"`
	ServingType   string  `json:"serving_type"`
	ServingAmount float64 `json:"serving_amount"`
	Notes         string  `json:"notes,omitempty"`
}

// UpdateMealRequest is the body for POST /meals/{id}/update (partial update).
type UpdateMealRequest struct {
	FoodID        string   `json:"food_id,omitempty"`
	FedAt         string   `json:"fed_at,omitempty"`
	MealType      string   `json:"meal_type,omitempty"`
	ServingType   string   `json:"serving_type,omitempty"`
	ServingAmount *float64 `json:"serving_amount,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// MealFilters narrows GET /meals queries. Zero values are omitted from the
// query string entirely.
type MealFilters struct {
	PetID    string
	GroupID  string
	FedBy    string
	DateFrom string // YYYY-MM-DD
	DateTo   string // YYYY-MM-DD
	MealType string
	Limit    int
	Offset   int
}

// TodayMealSummary summarizes the current day's feedings.
type TodayMealSummary struct {
	Date                     string   `json:"date"`
	TotalMeals               int      `json:"total_meals"`
	TotalCalories            float64  `json:"total_calories"`
	TotalWeightG             float64  `json:"total_weight_g"`
	BreakfastCount           int      `json:"breakfast_count"`
	LunchCount               int      `json:"lunch_count"`
	DinnerCount              int      `json:"dinner_count"`
	SnackCount               int      `json:"snack_count"`
	PetID                   string   `json:"pet_id,omitempty"`
	PetName                 string   `json:"pet_name,omitempty"`
	DailyCalorieTarget      *int     `json:"daily_calorie_target,omitempty"`
	CalorieTargetPercentage *float64 `json:"calorie_target_percentage,omitempty"`
	GroupID                 string   `json:"group_id,omitempty"`
	PetsFedCount            int      `json:"pets_fed_count,omitempty"`
}

// MealStatistics is the aggregate feeding report over a date range.
type MealStatistics struct {
	DateFrom             string           `json:"date_from"`
	DateTo               string           `json:"date_to"`
	TotalDays            int              `json:"total_days"`
	TotalMeals           int              `json:"total_meals"`
	TotalCalories        float64          `json:"total_calories"`
	TotalWeightG         float64          `json:"total_weight_g"`
	AvgMealsPerDay       float64          `json:"average_meals_per_day"`
	AvgCaloriesPerDay    float64          `json:"average_calories_per_day"`
	MealTypeDistribution map[string]int   `json:"meal_type_distribution,omitempty"`
	MostActiveFeeders    []FeederActivity `json:"most_active_feeders,omitempty"`
	MostUsedFoods        []FoodUsage      `json:"most_used_foods,omitempty"`
}

// FeederActivity counts meals recorded by one user.
type FeederActivity struct {
	UserName  string `json:"user_name"`
	MealCount int    `json:"meal_count"`
}

// FoodUsage counts how often a food was fed.
type FoodUsage struct {
	FoodName   string `json:"food_name"`
	UsageCount int    `json:"usage_count"`
}

// Group is a family/sharing group. Membership is a flat user-ID list.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatorID   string `json:"creator_id"`
	CreatedAt   int64  `json:"created_at"`
	MemberCount int    `json:"member_count"`
	IsCreator   bool   `json:"is_creator,omitempty"`
}

// GroupMember is one member of a group with user details.
type GroupMember struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Role      string `json:"role"` // "creator" or "member"
}

// Invitation is a pending group invite keyed by code.
type Invitation struct {
	ID            string `json:"id"`
	GroupName     string `json:"group_name,omitempty"`
	InvitedByName string `json:"invited_by_name,omitempty"`
	InviteCode    string `json:"invite_code"`
	CreatedAt     int64  `json:"created_at,omitempty"`
	ExpiresAt     int64  `json:"expires_at,omitempty"`
}
