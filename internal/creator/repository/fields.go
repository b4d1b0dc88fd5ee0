package repository

import (
	"encoding/json"
	"strconv"

	"skeleton-creator/internal/creator/models"
)

// ============================================================
// Field codec
// ============================================================

const (
	FieldDraw              = "draw"
	FieldWidth             = "width"
	FieldHeight            = "height"
	FieldBackgroundColor   = "backgroundColor"
	FieldForegroundColor   = "foregroundColor"
	FieldSpeed             = "speed"
	FieldMode              = "mode"
	FieldRTL               = "rtl"
	FieldGridVisibility    = "gridVisibility"
	FieldEditingMode       = "editingMode"
	FieldTool              = "tool"
	FieldImageAsBackground = "imageAsBackground"
)

// Encode раскладывает дизайн по полям хранилища.
func Encode(d models.Design) map[string]string {
	draw, _ := json.Marshal(d.Draw)
	return map[string]string{
		FieldDraw:              string(draw),
		FieldWidth:             strconv.FormatFloat(d.Width, 'f', -1, 64),
		FieldHeight:            strconv.FormatFloat(d.Height, 'f', -1, 64),
		FieldBackgroundColor:   d.BackgroundColor,
		FieldForegroundColor:   d.ForegroundColor,
		FieldSpeed:             strconv.FormatFloat(d.Speed, 'f', -1, 64),
		FieldMode:              string(d.Mode),
		FieldRTL:               strconv.FormatBool(d.RTL),
		FieldGridVisibility:    strconv.FormatBool(d.GridVisibility),
		FieldEditingMode:       string(d.EditingMode),
		FieldTool:              string(d.Tool),
		FieldImageAsBackground: d.ImageAsBackground,
	}
}

// Decode восстанавливает дизайн при старте. Отсутствующие или битые поля
// получают значения по умолчанию. Режим редактирования, инструмент и превью
// всегда стартуют с дефолтов.
func Decode(fields map[string]string) models.Design {
	d := models.Defaults()

	if raw, ok := fields[FieldDraw]; ok && raw != "" {
		var draw models.ShapeSource
		if err := json.Unmarshal([]byte(raw), &draw); err == nil && validDraw(draw) {
			d.Draw = draw
		}
	}
	if v, ok := parseNonNegative(fields[FieldWidth]); ok {
		d.Width = v
	}
	if v, ok := parseNonNegative(fields[FieldHeight]); ok {
		d.Height = v
	}
	if v, ok := parseNonNegative(fields[FieldSpeed]); ok && v > 0 {
		d.Speed = v
	}
	if c, err := models.NormalizeColor(fields[FieldBackgroundColor]); err == nil {
		d.BackgroundColor = c
	}
	if c, err := models.NormalizeColor(fields[FieldForegroundColor]); err == nil {
		d.ForegroundColor = c
	}
	if m, err := models.ParseFramework(fields[FieldMode]); err == nil {
		d.Mode = m
	}
	d.RTL = fields[FieldRTL] == "true"
	if v, err := strconv.ParseBool(fields[FieldGridVisibility]); err == nil {
		d.GridVisibility = v
	}
	d.ImageAsBackground = fields[FieldImageAsBackground]

	return d
}

func validDraw(s models.ShapeSource) bool {
	if s.Imported() && len(s.Shapes) > 0 {
		return false
	}
	for _, shape := range s.Shapes {
		if shape.Validate() != nil {
			return false
		}
	}
	return true
}

func parseNonNegative(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || !models.Finite(v) {
		return 0, false
	}
	return v, true
}
