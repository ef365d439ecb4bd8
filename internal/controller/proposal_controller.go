package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"job-proposal-be/internal/dto"
	"job-proposal-be/internal/exception"
	"job-proposal-be/internal/pkg/serverutils"
	"job-proposal-be/internal/service"
)

type IProposalController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Followup(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	SearchDebug(ctx *fiber.Ctx) error
	SyncCorpus(ctx *fiber.Ctx) error
}

type proposalController struct {
	proposalService service.IProposalService
	ingestService   service.IIngestService
}

func NewProposalController(proposalService service.IProposalService, ingestService service.IIngestService) IProposalController {
	return &proposalController{
		proposalService: proposalService,
		ingestService:   ingestService,
	}
}

func (c *proposalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/proposal/v1")
	h.Post("generate", c.Generate)
	h.Post("followup", c.Followup)
	h.Get("sessions", c.ListSessions)
	h.Get("sessions/:id", c.ShowSession)
	h.Get("search-debug", c.SearchDebug)
	h.Post("sync", c.SyncCorpus)
}

func (c *proposalController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateProposalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.proposalService.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate proposal", res))
}

func (c *proposalController) Followup(ctx *fiber.Ctx) error {
	var req dto.FollowupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.proposalService.Followup(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer followup", res))
}

func (c *proposalController) ListSessions(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.proposalService.ListSessions(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *proposalController) ShowSession(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return exception.Validation("invalid session id")
	}

	res, err := c.proposalService.ShowSession(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *proposalController) SearchDebug(ctx *fiber.Ctx) error {
	req := dto.SearchDebugRequest{
		Query: ctx.Query("q"),
		TopK:  ctx.QueryInt("top_k", 0),
	}
	if req.Query == "" {
		return exception.Validation("query parameter 'q' is required")
	}

	res, err := c.proposalService.SearchDebug(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search corpus", res))
}

func (c *proposalController) SyncCorpus(ctx *fiber.Ctx) error {
	res, err := c.ingestService.SyncAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sync corpus", res))
}
