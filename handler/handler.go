// Package handler exposes the data-access service over a thin JSON API.
// Handlers translate transport concerns only; all business rules live in
// the service.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	models "github.com/efad07/lumina/model"
	"github.com/efad07/lumina/pkg/jwt"
	"github.com/efad07/lumina/service"
)

type Handler struct {
	svc *service.Service
	jwt *jwt.Manager
}

func New(svc *service.Service, jwtManager *jwt.Manager) *Handler {
	return &Handler{svc: svc, jwt: jwtManager}
}

// RegisterRoutes mounts the API under /api.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api", Authenticate(h.jwt))

	api.Post("/auth/login", h.login)
	api.Post("/auth/signup", h.signup)

	api.Get("/feed", h.getFeed)
	api.Get("/trending", h.getTrending)
	api.Get("/profiles/:username", h.getUserProfile)
	api.Get("/users/suggested", h.getSuggestedUsers)
	api.Get("/users/:id", h.getUserByID)
	api.Get("/users/:id/posts", h.getUserPosts)
	api.Get("/users/:id/followers", h.getFollowers)
	api.Get("/users/:id/following", h.getFollowing)
	api.Get("/posts/:id/comments", h.getComments)

	authed := api.Group("", RequireAuth())
	authed.Patch("/me", h.updateProfile)
	authed.Post("/posts", h.createPost)
	authed.Delete("/posts/:id", h.deletePost)
	authed.Post("/posts/:id/like", h.toggleLike)
	authed.Post("/posts/:id/comments", h.addComment)
	authed.Post("/users/:id/follow", h.followUser)
	authed.Delete("/users/:id/follow", h.unfollowUser)
	authed.Get("/conversations", h.getConversations)
	authed.Get("/messages/:userId", h.getMessages)
	authed.Post("/messages/:userId", h.sendMessage)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	var creds credentials
	if err := c.BodyParser(&creds); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.svc.Authenticate(c.Context(), creds.Email, creds.Password)
	if err != nil {
		return fail(c, err)
	}

	return h.respondWithToken(c, fiber.StatusOK, user)
}

func (h *Handler) signup(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.svc.Register(c.Context(), &input)
	if err != nil {
		return fail(c, err)
	}

	return h.respondWithToken(c, fiber.StatusCreated, user)
}

func (h *Handler) respondWithToken(c *fiber.Ctx, status int, user *models.User) error {
	token, err := h.jwt.Generate(user.ID, user.Username)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(status).JSON(authResponse{Token: token, User: user})
}

func (h *Handler) getFeed(c *fiber.Ctx) error {
	posts, err := h.svc.GetFeed(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

func (h *Handler) getTrending(c *fiber.Ctx) error {
	posts, err := h.svc.GetTrendingPosts(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

func (h *Handler) getUserPosts(c *fiber.Ctx) error {
	posts, err := h.svc.GetUserPosts(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

func (h *Handler) createPost(c *fiber.Ctx) error {
	var draft models.PostDraft
	if err := c.BodyParser(&draft); err != nil {
		return badRequest(c, "invalid request body")
	}
	draft.AuthorID = currentUserID(c)

	post, err := h.svc.CreatePost(c.Context(), &draft)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *Handler) deletePost(c *fiber.Ctx) error {
	postID := c.Params("id")

	post, err := h.svc.GetPost(c.Context(), postID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Already gone; deletion is idempotent.
			return c.SendStatus(fiber.StatusNoContent)
		}
		return fail(c, err)
	}

	if post.AuthorID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "only the author can delete a post"})
	}

	if err := h.svc.DeletePost(c.Context(), postID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) toggleLike(c *fiber.Ctx) error {
	post, err := h.svc.ToggleLike(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

func (h *Handler) getComments(c *fiber.Ctx) error {
	comments, err := h.svc.GetComments(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comments)
}

func (h *Handler) addComment(c *fiber.Ctx) error {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	comment, err := h.svc.AddComment(c.Context(), c.Params("id"), currentUserID(c), body.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *Handler) getUserProfile(c *fiber.Ctx) error {
	user, err := h.svc.GetUserProfile(c.Context(), c.Params("username"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) getUserByID(c *fiber.Ctx) error {
	user, err := h.svc.GetUserByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) getSuggestedUsers(c *fiber.Ctx) error {
	users, err := h.svc.GetSuggestedUsers(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *Handler) getFollowers(c *fiber.Ctx) error {
	users, err := h.svc.GetFollowers(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *Handler) getFollowing(c *fiber.Ctx) error {
	users, err := h.svc.GetFollowing(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	var update models.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.svc.UpdateProfile(c.Context(), currentUserID(c), &update)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) followUser(c *fiber.Ctx) error {
	if err := h.svc.FollowUser(c.Context(), currentUserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) unfollowUser(c *fiber.Ctx) error {
	if err := h.svc.UnfollowUser(c.Context(), currentUserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) getConversations(c *fiber.Ctx) error {
	conversations, err := h.svc.GetConversations(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(conversations)
}

func (h *Handler) getMessages(c *fiber.Ctx) error {
	msgs, err := h.svc.GetMessages(c.Context(), currentUserID(c), c.Params("userId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(msgs)
}

func (h *Handler) sendMessage(c *fiber.Ctx) error {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	msg, err := h.svc.SendMessage(c.Context(), currentUserID(c), c.Params("userId"), body.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// fail maps service errors onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case models.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
