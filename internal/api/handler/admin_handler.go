package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

// AdminHandler exposes account moderation and system settings to admins. The
// RBAC middleware guards every route; the handler itself does no role checks.
type AdminHandler struct {
	users    ports.UserAdminService
	settings ports.SettingsService
}

func NewAdminHandler(users ports.UserAdminService, settings ports.SettingsService) *AdminHandler {
	return &AdminHandler{users: users, settings: settings}
}

type updateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active banned"`
}

type updateSettingRequest struct {
	Value any `json:"value" validate:"required"`
}

// ListUsers returns every registered account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one account by id.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUserStatus bans or unbans an account.
//
// @Summary      Ban or unban a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "User id"
// @Param        body  body      updateUserStatusRequest  true  "New status"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id}/status [put]
func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	var req updateUserStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.users.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSettings returns every system setting.
//
// @Summary      List system settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Setting
// @Router       /admin/settings [get]
func (h *AdminHandler) ListSettings(c echo.Context) error {
	settings, err := h.settings.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// GetSetting returns one system setting by key.
//
// @Summary      Get a system setting
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        key  path  string  true  "Setting key"
// @Success      200  {object}  domain.Setting
// @Failure      404  {object}  map[string]string
// @Router       /admin/settings/{key} [get]
func (h *AdminHandler) GetSetting(c echo.Context) error {
	setting, err := h.settings.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}

// UpdateSetting changes the value of a system setting.
//
// @Summary      Update a system setting
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path      string                true  "Setting key"
// @Param        body  body      updateSettingRequest  true  "New value"
// @Success      200   {object}  domain.Setting
// @Failure      404   {object}  map[string]string
// @Router       /admin/settings/{key} [put]
func (h *AdminHandler) UpdateSetting(c echo.Context) error {
	var req updateSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	setting, err := h.settings.Update(c.Request().Context(), c.Param("key"), req.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}
