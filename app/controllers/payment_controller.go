package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/enfantsenjoie/eejsite/internal/pkg/payment"
	"github.com/enfantsenjoie/eejsite/internal/pkg/statistics"
	"github.com/enfantsenjoie/eejsite/internal/pkg/viewmodel"
)

// SignatureHeader is the header FedaPay signs its deliveries with.
const SignatureHeader = "X-Fedapay-Signature"

// HandleDonationStart creates a pending donation and renders the checkout
// page embedding the FedaPay widget descriptor. Accepts the amount and
// currency via form POST or query parameters (GET fallback).
func HandleDonationStart(c *fiber.Ctx) error {
	amount := c.FormValue("amount")
	currency := c.FormValue("currency")
	email := c.FormValue("email")
	phone := c.FormValue("phone")
	if c.Method() == fiber.MethodGet {
		amount = c.Query("amount")
		currency = c.Query("currency")
		email = c.Query("email")
		phone = c.Query("phone")
	}

	checkout, err := paymentService.StartCheckout(
		amount, currency, email, phone,
		c.BaseURL()+"/paiement/succes",
		c.BaseURL()+"/paiement/annule",
	)
	if err != nil {
		log.Error(fmt.Sprintf("checkout start failed: %v", err))
		fm := fiber.Map{
			"type":    "error",
			"message": "Impossible de démarrer le paiement, merci de réessayer.",
		}
		return flash.WithError(c, fm).Redirect("/donner")
	}

	og := &viewmodel.OpenGraph{
		Title:       "Paiement - ONG Enfants En Joie",
		Description: "Finalisez votre don",
		Image:       "/img/eej-logo.png",
		URL:         "/donner",
	}
	return render(c, "pages/checkout", "Paiement", og, fiber.Map{
		"Checkout": checkout,
	})
}

// HandleDonationSuccess sets the thank-you notice and returns to the
// donation page. The donation status itself only changes through the
// webhook; this redirect target is cosmetic.
func HandleDonationSuccess(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type":    "success",
		"message": "Merci pour votre don !",
	}
	return flash.WithSuccess(c, fm).Redirect("/donner")
}

// HandleDonationCancel sets the cancel notice and returns to the donation
// page.
func HandleDonationCancel(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type":    "error",
		"message": "Paiement annulé.",
	}
	return flash.WithError(c, fm).Redirect("/donner")
}

// HandleFedaPayWebhook receives processor deliveries. A 2xx answer tells
// the processor not to redeliver; a 400 with a short diagnostic may
// trigger a retry on its side.
func HandleFedaPayWebhook(c *fiber.Ctx) error {
	outcome, err := paymentService.HandleWebhook(c.Body(), c.Get(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidSignature):
			return c.Status(fiber.StatusBadRequest).SendString("invalid signature")
		case errors.Is(err, payment.ErrInvalidPayload):
			return c.Status(fiber.StatusBadRequest).SendString("invalid payload")
		case errors.Is(err, payment.ErrMissingReference):
			return c.Status(fiber.StatusBadRequest).SendString("missing reference")
		case errors.Is(err, payment.ErrUnknownDonation):
			return c.Status(fiber.StatusBadRequest).SendString("unknown donation")
		}
		log.Error(fmt.Sprintf("webhook processing failed: %v", err))
		return c.Status(fiber.StatusInternalServerError).SendString("error")
	}

	if outcome.Applied {
		log.Info(fmt.Sprintf("donation %s reconciled to %s", outcome.Reference, outcome.Status))
		statistics.ResetCacheUpdateTimer()
	}

	return c.SendString("ok")
}
