package controller

import (
	"github.com/gofiber/fiber/v2"

	"job-proposal-be/internal/dto"
	"job-proposal-be/internal/pkg/serverutils"
	"job-proposal-be/internal/service"
)

type IResumeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	SyncCorpus(ctx *fiber.Ctx) error
}

type resumeController struct {
	resumeService service.IResumeService
	ingestService service.IIngestService
}

func NewResumeController(resumeService service.IResumeService, ingestService service.IIngestService) IResumeController {
	return &resumeController{
		resumeService: resumeService,
		ingestService: ingestService,
	}
}

func (c *resumeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resume/v1")
	h.Get("", c.List)
	h.Post("", c.Add)
	h.Post("sync", c.SyncCorpus)
	h.Get(":name", c.Show)
	h.Delete(":name", c.Delete)
}

func (c *resumeController) List(ctx *fiber.Ctx) error {
	res, err := c.resumeService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list resumes", res))
}

func (c *resumeController) Show(ctx *fiber.Ctx) error {
	res, err := c.resumeService.Show(ctx.Context(), ctx.Params("name"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show resume", res))
}

func (c *resumeController) Add(ctx *fiber.Ctx) error {
	var req dto.AddResumeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resumeService.Add(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add resume", res))
}

func (c *resumeController) Delete(ctx *fiber.Ctx) error {
	if err := c.resumeService.Delete(ctx.Context(), ctx.Params("name")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete resume", struct{}{}))
}

func (c *resumeController) SyncCorpus(ctx *fiber.Ctx) error {
	res, err := c.ingestService.SyncAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sync corpus", res))
}
