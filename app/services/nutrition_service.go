package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/cuisineai/pkg/genai"
)

// NutritionInfo is the JSON body of a successful /generate-nutritional-info call.
type NutritionInfo struct {
	NutritionalInfo string `json:"nutritionalInfo"`
}

const nutritionPrompt = `Generate detailed nutritional information for the dish "%[1]s". Provide the nutritional values for 100 grams of the dish. The information should include:
    - Calories
    - Protein
    - Fat
    - Carbohydrates
    - Fiber

    Present the information in the following format:

    **Dish Name: %[1]s**

    **Nutritional Information (per 100 grams):**
    - **Calories:** [value] kcal
    - **Protein:** [value] g
    - **Fat:** [value] g
    - **Carbohydrates:** [value] g
    - **Fiber:** [value] g

    Ensure the output is clear, concise, and easy to read.`

type NutritionService struct {
	gen genai.Generator
}

func NewNutritionService(gen genai.Generator) *NutritionService {
	return &NutritionService{gen: gen}
}

// BuildNutritionPrompt asks for per-100g calories, protein, fat,
// carbohydrates and fiber in a fixed markdown layout.
func BuildNutritionPrompt(dishName string) string {
	return fmt.Sprintf(nutritionPrompt, dishName)
}

// Generate returns the model's answer unmodified.
func (s *NutritionService) Generate(ctx context.Context, dishName string) (NutritionInfo, error) {
	text, err := s.gen.Generate(ctx, BuildNutritionPrompt(dishName))
	if err != nil {
		return NutritionInfo{}, err
	}
	return NutritionInfo{NutritionalInfo: text}, nil
}
