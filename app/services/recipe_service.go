package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/cuisineai/pkg/genai"
)

// Recipe is the JSON body of a successful /generate-recipe call.
type Recipe struct {
	RecipeTitle     string `json:"recipeTitle"`
	FormattedRecipe string `json:"formattedRecipe"`
}

type RecipeService struct {
	gen genai.Generator
}

func NewRecipeService(gen genai.Generator) *RecipeService {
	return &RecipeService{gen: gen}
}

// Generate asks the model for a recipe and splits the answer into a title
// and body.
func (s *RecipeService) Generate(ctx context.Context, ingredients []string, cuisine string) (Recipe, error) {
	text, err := s.gen.Generate(ctx, BuildRecipePrompt(ingredients, cuisine))
	if err != nil {
		return Recipe{}, err
	}
	return SplitRecipe(text), nil
}

// BuildRecipePrompt lists ingredients comma-separated and names the cuisine.
func BuildRecipePrompt(ingredients []string, cuisine string) string {
	return fmt.Sprintf("Generate a recipe with the following ingredients: %s in the cuisine %s",
		strings.Join(ingredients, ", "), cuisine)
}

// SplitRecipe drops whitespace-only lines, takes the first remaining line
// verbatim as the title and joins the rest, trimmed, as the body. Fewer than
// two lines leave the body empty.
func SplitRecipe(text string) Recipe {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Recipe{}
	}
	return Recipe{
		RecipeTitle:     lines[0],
		FormattedRecipe: strings.TrimSpace(strings.Join(lines[1:], "\n")),
	}
}
