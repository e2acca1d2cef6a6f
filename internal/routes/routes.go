package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plateful/recipe-backend/internal/handlers"
	"github.com/plateful/recipe-backend/internal/middleware"
)

// SetupRoutes wires the static route table. Everything under the auth group
// sees an already-resolved user in the request context or a 401 before the
// handler runs.
func SetupRoutes(
	r *chi.Mux,
	userHandler *handlers.UserHandler,
	tagHandler *handlers.TagHandler,
	ingredientHandler *handlers.IngredientHandler,
	recipeHandler *handlers.RecipeHandler,
	resolver middleware.TokenResolver,
) {
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"detail":"Method not allowed."}`))
	})

	// Public endpoints
	r.Get("/cats/hello", handlers.Hello)
	r.Post("/cats/greet", handlers.Greet)
	r.Post("/user/create", userHandler.Create)
	r.Post("/user/token", userHandler.Token)

	// Token-protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(resolver))

		r.Get("/user/me", userHandler.Me)
		r.Patch("/user/me", userHandler.UpdateMe)

		r.Get("/recipe/tags", tagHandler.List)
		r.Post("/recipe/tags", tagHandler.Create)

		r.Get("/recipe/ingredients", ingredientHandler.List)
		r.Post("/recipe/ingredients", ingredientHandler.Create)

		r.Get("/recipe/recipes", recipeHandler.List)
		r.Post("/recipe/recipes", recipeHandler.Create)
		r.Get("/recipe/recipes/{id}", recipeHandler.Get)
		r.Put("/recipe/recipes/{id}", recipeHandler.Put)
		r.Patch("/recipe/recipes/{id}", recipeHandler.Patch)
		r.Delete("/recipe/recipes/{id}", recipeHandler.Delete)
	})
}
