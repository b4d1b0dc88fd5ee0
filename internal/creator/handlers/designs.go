package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"skeleton-creator/internal/creator/models"
	"skeleton-creator/internal/creator/parser"
	"skeleton-creator/internal/creator/presets"
	"skeleton-creator/internal/creator/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
)

// ============================================================
// Design Handler
// ============================================================

const controllerKey = "controller"

var (
	errEmptyBody   = errors.New("empty body")
	errInvalidJSON = errors.New("invalid json")
)

type DesignHandler struct {
	registry *service.Registry
	presets  *presets.Catalog
}

func NewDesignHandler(registry *service.Registry, catalog *presets.Catalog) *DesignHandler {
	if catalog == nil {
		catalog = presets.Default()
	}
	return &DesignHandler{registry: registry, presets: catalog}
}

type createResponse struct {
	ID     string        `json:"id"`
	Design models.Design `json:"design"`
}

type shapesRequest struct {
	Shapes []models.Shape `json:"shapes"`
}

type toolRequest struct {
	Tool string `json:"tool"`
}

type nameRequest struct {
	Name string `json:"name"`
}

// inputValue принимает и строку, и число: панель шлёт содержимое поля ввода.
type inputValue string

func (v *inputValue) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = inputValue(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	*v = inputValue(data)
	return nil
}

type inputRequest struct {
	Name  string     `json:"name"`
	Value inputValue `json:"value"`
}

type colorRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type flagRequest struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// ListPresets отдаёт каталог пресетов.
func (h *DesignHandler) ListPresets(c fiber.Ctx) error {
	return c.JSON(h.presets.All())
}

// Create открывает новую сессию редактора.
func (h *DesignHandler) Create(c fiber.Ctx) error {
	ctrl, err := h.registry.Create(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	d, err := ctrl.State(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(createResponse{ID: ctrl.ID(), Design: d})
}

// Load находит контроллер по :id и кладёт его в Locals для остальных
// обработчиков группы.
func (h *DesignHandler) Load(c fiber.Ctx) error {
	ctrl, err := h.registry.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Locals(controllerKey, ctrl)
	return c.Next()
}

func (h *DesignHandler) Get(c fiber.Ctx) error {
	return respondState(c, controller(c))
}

// Delete закрывает сессию и удаляет сохранённое состояние дизайна.
func (h *DesignHandler) Delete(c fiber.Ctx) error {
	if err := h.registry.Delete(c.Context(), controller(c).ID()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Snippet отдаёт код для выбранного (или ?mode=) фреймворка. С ?copy=1
// запрос считается копированием в буфер обмена.
func (h *DesignHandler) Snippet(c fiber.Ctx) error {
	var mode models.Framework
	if q := c.Query("mode"); q != "" {
		m, err := models.ParseFramework(q)
		if err != nil {
			return writeError(c, err)
		}
		mode = m
	}

	ctrl := controller(c)
	var snippet string
	if c.Query("copy") == "1" {
		s, err := ctrl.CopySnippet(c.Context(), mode)
		if err != nil {
			return writeError(c, err)
		}
		snippet = s
	} else {
		out, err := ctrl.RenderAs(c.Context(), mode)
		if err != nil {
			return writeError(c, err)
		}
		snippet = out.Snippet
	}

	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(snippet)
}

// Live отдаёт React-вариант для песочницы превью.
func (h *DesignHandler) Live(c fiber.Ctx) error {
	out, err := controller(c).Render(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(out.Live)
}

func (h *DesignHandler) SetShapes(c fiber.Ctx) error {
	var req shapesRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.SetShapes(c.Context(), req.Shapes)
	})
}

func (h *DesignHandler) SetTool(c fiber.Ctx) error {
	var req toolRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.SetTool(c.Context(), req.Tool)
	})
}

func (h *DesignHandler) ApplyPreset(c fiber.Ctx) error {
	var req nameRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.ApplyPreset(c.Context(), req.Name)
	})
}

func (h *DesignHandler) ResetColors(c fiber.Ctx) error {
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.ResetColors(c.Context())
	})
}

func (h *DesignHandler) SetInput(c fiber.Ctx) error {
	var req inputRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.SetInput(c.Context(), req.Name, string(req.Value))
	})
}

// SetColor принимает цвет сразу, но применяет его после паузы ввода, поэтому
// отвечает 202 без состояния.
func (h *DesignHandler) SetColor(c fiber.Ctx) error {
	var req colorRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := controller(c).SetColor(c.Context(), req.Name, req.Value); err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"status": "pending"})
}

func (h *DesignHandler) SetFlag(c fiber.Ctx) error {
	var req flagRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.SetFlag(c.Context(), req.Name, req.Checked)
	})
}

func (h *DesignHandler) SetFramework(c fiber.Ctx) error {
	var req modeRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.SetFramework(c.Context(), req.Mode)
	})
}

func (h *DesignHandler) SetEditingMode(c fiber.Ctx) error {
	var req modeRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.SetEditingMode(c.Context(), req.Mode)
	})
}

// ImportSVG принимает файл из multipart/form-data ("file") или вставленную
// разметку в теле запроса.
func (h *DesignHandler) ImportSVG(c fiber.Ctx) error {
	ctrl := controller(c)

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		file, err := c.FormFile("file")
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required in multipart/form-data"})
		}
		log.Infof("[CREATOR] svg upload %s, size: %d", file.Filename, file.Size)

		f, err := file.Open()
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
		}
		defer f.Close()

		if err := ctrl.ImportSVG(c.Context(), f); err != nil {
			return writeError(c, err)
		}
		return respondState(c, ctrl)
	}

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}
	if err := ctrl.ImportSnippet(c.Context(), string(c.Body())); err != nil {
		return writeError(c, err)
	}
	return respondState(c, ctrl)
}

func (h *DesignHandler) FinishSVG(c fiber.Ctx) error {
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.FinishSVG(c.Context())
	})
}

func (h *DesignHandler) SetBackground(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required"})
	}
	f, err := file.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.SetImageBackground(c.Context(), data)
	})
}

func (h *DesignHandler) ClearBackground(c fiber.Ctx) error {
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.ClearImageBackground(c.Context())
	})
}

func (h *DesignHandler) ResetRenderCanvas(c fiber.Ctx) error {
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.ResetRenderCanvas(c.Context())
	})
}

func (h *DesignHandler) Reset(c fiber.Ctx) error {
	return mutate(c, func(ctrl *service.Controller) error {
		return ctrl.Reset(c.Context())
	})
}

// ============================================================
// Helpers
// ============================================================

func controller(c fiber.Ctx) *service.Controller {
	ctrl, _ := c.Locals(controllerKey).(*service.Controller)
	return ctrl
}

func bind(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(c.Body(), out); err != nil {
		return errInvalidJSON
	}
	return nil
}

func mutate(c fiber.Ctx, fn func(ctrl *service.Controller) error) error {
	ctrl := controller(c)
	if err := fn(ctrl); err != nil {
		return writeError(c, err)
	}
	return respondState(c, ctrl)
}

func respondState(c fiber.Ctx, ctrl *service.Controller) error {
	d, err := ctrl.State(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(d)
}

func writeError(c fiber.Ctx, err error) error {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("[CREATOR] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, parser.ErrMalformedSVG),
		errors.Is(err, parser.ErrEmptySVG):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errEmptyBody),
		errors.Is(err, errInvalidJSON),
		errors.Is(err, presets.ErrUnknownPreset),
		errors.Is(err, models.ErrInvalidColor),
		errors.Is(err, models.ErrInvalidValue),
		errors.Is(err, models.ErrUnknownFramework),
		errors.Is(err, models.ErrUnknownMode),
		errors.Is(err, models.ErrUnknownTool),
		errors.Is(err, service.ErrNotImage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
