package controller

import (
	"question-bank-be/internal/dto"
	"question-bank-be/internal/pkg/serverutils"
	"question-bank-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	apiVersion = "2.0.0"
	banner     = "Question Generation API v2.0. Use /questionBankService/source/{sourceId}/questions/generate to create questions with parallel generation over a shared summary."
)

type IQuestionController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type questionController struct {
	service service.IQuestionService
}

func NewQuestionController(service service.IQuestionService) IQuestionController {
	return &questionController{service: service}
}

func (c *questionController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)

	h := r.Group("/questionBankService", auth)
	h.Post("/source/:sourceId/questions/generate", c.Generate)
	h.Get("/sessions/:sessionId/history", c.History)
}

func (c *questionController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": banner})
}

func (c *questionController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Status:        "healthy",
		Version:       apiVersion,
		Optimizations: []string{"shared_summary_generation", "parallel_generation_worker_pool"},
	})
}

func (c *questionController) Generate(ctx *fiber.Ctx) error {
	sourceID := ctx.Params("sourceId")

	var req dto.GenerateQuestionsRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.UserContext(), sourceID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *questionController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	res, err := c.service.History(ctx.UserContext(), sessionID, ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get generation history", res))
}
