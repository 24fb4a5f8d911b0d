package controllers

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/internal/pkg/loginguard"
	"github.com/enfantsenjoie/eejsite/internal/pkg/session"
	"github.com/enfantsenjoie/eejsite/internal/pkg/usercontext"
	"github.com/enfantsenjoie/eejsite/internal/pkg/viewmodel"
)

// HandleAuthLogin renders the staff login form and processes submissions.
// The session-scoped guard locks the form after repeated failures; while
// locked no credential check happens at all.
func HandleAuthLogin(c *fiber.Ctx) error {
	if isLoggedIn(c) {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	if c.Method() == fiber.MethodPost {
		return handleLoginAttempt(c)
	}

	og := &viewmodel.OpenGraph{
		Title: "Connexion - ONG Enfants En Joie",
		URL:   "/connexion",
	}
	return render(c, "pages/login", "Connexion", og, fiber.Map{})
}

func handleLoginAttempt(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/connexion")
	}

	state, status := loginGuard.Evaluate(loginguard.Load(sess))
	if status.Locked {
		loginguard.Store(sess, state)
		_ = sess.Save()
		fm["message"] = lockedMessage(status)
		return flash.WithError(c, fm).Redirect("/connexion")
	}

	user, err := repos.User.GetByEmail(c.FormValue("email"))
	if err != nil || !models.CheckPasswordHash(c.FormValue("password"), user.Password) {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			fm["message"] = "There is a problem with the login process"
			return flash.WithError(c, fm).Redirect("/connexion")
		}

		state, status = loginGuard.RecordFailure(state)
		loginguard.Store(sess, state)
		if saveErr := sess.Save(); saveErr != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", saveErr)
			return flash.WithError(c, fm).Redirect("/connexion")
		}

		if status.Locked {
			fm["message"] = lockedMessage(status)
		} else {
			fm["message"] = "Identifiants invalides."
		}
		return flash.WithError(c, fm).Redirect("/connexion")
	}

	loginguard.Store(sess, loginGuard.Reset())
	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyIsAdmin, user.Role == models.ROLE_ADMIN)

	if err := sess.Save(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/connexion")
	}

	_ = repos.User.UpdateLastLogin(user.ID, time.Now())

	fm = fiber.Map{
		"type":    "success",
		"message": "Bienvenue !",
	}
	return flash.WithSuccess(c, fm).Redirect("/dashboard")
}

func lockedMessage(status loginguard.Status) string {
	seconds := int(math.Ceil(status.Remaining.Seconds()))
	return fmt.Sprintf("Trop de tentatives. Réessayez dans %d secondes.", seconds)
}

// HandleAuthLogout destroys the staff session.
func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"
		return flash.WithError(c, fm).Redirect("/connexion")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/connexion")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "À bientôt !",
	}

	c.Locals(usercontext.KeyFromProtected, false)

	return flash.WithSuccess(c, fm).Redirect("/connexion")
}
