// Package server exposes the casting engine and GIF probing over HTTP.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AnyUserName/hexcast-cli/internal/divine"
	"github.com/AnyUserName/hexcast-cli/internal/gif"
	"github.com/AnyUserName/hexcast-cli/internal/hexagram"
	"github.com/AnyUserName/hexcast-cli/internal/imageio"
)

// maxUploadBytes bounds request bodies for cast and probe.
const maxUploadBytes = 32 << 20

type Handler struct {
	catalog       *hexagram.Catalog
	defaultMethod divine.Method
}

func NewHandler(catalog *hexagram.Catalog, defaultMethod divine.Method) *Handler {
	return &Handler{catalog: catalog, defaultMethod: defaultMethod}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.POST("/v1/cast", h.Cast)
	e.GET("/v1/hexagrams/:number", h.Hexagram)
	e.POST("/v1/gif/probe", h.ProbeGif)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Cast accepts raw image bytes in the request body and returns a full
// reading. The casting method comes from the "method" query parameter,
// falling back to the configured default.
func (h *Handler) Cast(c echo.Context) error {
	method := h.defaultMethod
	if raw := c.QueryParam("method"); raw != "" {
		parsed, err := divine.ParseMethod(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		method = parsed
	}

	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUploadBytes))
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body must contain image bytes"})
	}

	buf, err := imageio.Decode(data)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported or corrupt image"})
	}

	res, err := divine.Cast(buf.Pix, buf.Width, buf.Height, method, h.catalog)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toCastResponse(res))
}

// Hexagram serves a single catalog entry by number.
func (h *Handler) Hexagram(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "number must be an integer"})
	}
	hex, ok := h.catalog.ByNumber(n)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no hexagram with that number"})
	}
	resp := toHexagramResponse(hex)
	return c.JSON(http.StatusOK, resp)
}

// ProbeGif reports whether uploaded bytes are an animated GIF, plus
// canvas dimensions and frame count. The animated flag comes from the
// fast block-walk; the counts from a full decode.
func (h *Handler) ProbeGif(c echo.Context) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUploadBytes))
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body must contain GIF bytes"})
	}

	animated := gif.IsAnimated(data)
	anim, err := gif.Decode(data)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, ProbeResponse{
		Animated: animated,
		Width:    anim.Width,
		Height:   anim.Height,
		Frames:   len(anim.Frames),
	})
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, gif.ErrFormat):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "not a GIF file"})
	case errors.Is(err, gif.ErrEmptyAnimation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "no frames decoded"})
	case errors.Is(err, divine.ErrNoHexagram):
		slog.Error("hexagram table incomplete", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func toCastResponse(res divine.Result) CastResponse {
	out := CastResponse{
		Method:        string(res.Method),
		ChangingLines: res.ChangingLines,
		Primary:       toHexagramResponse(res.Primary),
	}
	if out.ChangingLines == nil {
		out.ChangingLines = []int{}
	}
	for i, s := range res.Lines {
		out.Lines = append(out.Lines, LineResponse{
			Position: i + 1,
			Value:    int(s.Value),
			Current:  string(s.Current),
			Future:   string(s.Future),
			Changing: s.Changing,
		})
	}
	if res.Transformed != nil {
		resp := toHexagramResponse(*res.Transformed)
		out.Transformed = &resp
	}

	interp := divine.Interpret(res)
	out.Interpretation = InterpretationResp{
		ChangingCount: interp.ChangingCount,
		Focus:         string(interp.Focus),
		Description:   interp.Description,
		RelevantLines: interp.RelevantLines,
	}
	if out.Interpretation.RelevantLines == nil {
		out.Interpretation.RelevantLines = []int{}
	}
	return out
}

func toHexagramResponse(h hexagram.Hexagram) HexagramResponse {
	return HexagramResponse{
		Number:    h.Number,
		Symbol:    h.Symbol,
		NameZh:    h.Name.Zh,
		NamePy:    h.Name.Pinyin,
		NameEn:    h.Name.En,
		Classical: h.Judgment.Classical,
		Modern:    h.Judgment.Modern,
		Lines:     h.Lines,
		Extra:     h.Extra,
	}
}
