package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/cuisineai/app/services"
	"github.com/shashiranjanraj/cuisineai/pkg/ctx"
)

// Plain-text bodies sent with status 500 when the model call fails.
const (
	MsgRecipeFailed    = "Error generating recipe"
	MsgNutritionFailed = "Error generating nutritional information"
)

type RecipeInput struct {
	Ingredients []string `json:"ingredients" validate:"required"`
	Cuisine     string   `json:"cuisine"     validate:"required"`
}

type NutritionInput struct {
	DishName string `json:"dishName" validate:"required"`
}

type GenerationController struct {
	recipes   *services.RecipeService
	nutrition *services.NutritionService
}

func NewGenerationController(recipes *services.RecipeService, nutrition *services.NutritionService) *GenerationController {
	return &GenerationController{recipes: recipes, nutrition: nutrition}
}

func (g *GenerationController) Recipe(c *ctx.Context) {
	var in RecipeInput
	if !c.BindJSON(&in) {
		return
	}

	recipe, err := g.recipes.Generate(c.Context(), in.Ingredients, in.Cuisine)
	if err != nil {
		c.Logger().Error("error generating recipe", "error", err, "cuisine", in.Cuisine)
		c.String(http.StatusInternalServerError, MsgRecipeFailed)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (g *GenerationController) Nutrition(c *ctx.Context) {
	var in NutritionInput
	if !c.BindJSON(&in) {
		return
	}

	info, err := g.nutrition.Generate(c.Context(), in.DishName)
	if err != nil {
		c.Logger().Error("error generating nutritional information", "error", err, "dish", in.DishName)
		c.String(http.StatusInternalServerError, MsgNutritionFailed)
		return
	}
	c.JSON(http.StatusOK, info)
}
