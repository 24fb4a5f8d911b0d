package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/internal/pkg/mail"
	"github.com/enfantsenjoie/eejsite/internal/pkg/statistics"
	"github.com/enfantsenjoie/eejsite/internal/pkg/viewmodel"
)

// HandleContact renders the contact form and accepts submissions. The
// acknowledgment email is fail-silent: the visitor sees the success notice
// whether or not the relay cooperated.
func HandleContact(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		message := &models.ContactMessage{
			Name:        c.FormValue("name"),
			Email:       c.FormValue("email"),
			Phone:       c.FormValue("phone"),
			RequestType: c.FormValue("request_type"),
			Subject:     c.FormValue("subject"),
			Message:     c.FormValue("message"),
		}
		if message.RequestType == "" {
			message.RequestType = models.RequestTypeInfo
		}

		if err := message.Validate(); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": "Merci de vérifier les champs du formulaire.",
			}
			return flash.WithError(c, fm).Redirect("/contact")
		}

		if err := repos.Contact.Create(message); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": "Une erreur est survenue, merci de réessayer.",
			}
			return flash.WithError(c, fm).Redirect("/contact")
		}

		go mail.SendContactAcknowledgment(message)
		statistics.ResetCacheUpdateTimer()

		fm := fiber.Map{
			"type":    "success",
			"message": "Merci ! Votre message a bien été envoyé.",
		}
		return flash.WithSuccess(c, fm).Redirect("/contact")
	}

	og := &viewmodel.OpenGraph{
		Title:       "Contact - ONG Enfants En Joie",
		Description: "Écrivez-nous : information, partenariat, soutien",
		Image:       "/img/eej-logo.png",
		URL:         "/contact",
	}
	return render(c, "pages/contact", "Contact", og, fiber.Map{
		"RequestTypes": models.RequestTypes(),
	})
}
