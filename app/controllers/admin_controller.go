package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/internal/pkg/payment"
	"github.com/enfantsenjoie/eejsite/internal/pkg/slugify"
	"github.com/enfantsenjoie/eejsite/internal/pkg/statistics"
)

// HandleAdminDashboard renders the staff dashboard with the cached
// counters, the per-status donation breakdown and the latest news.
func HandleAdminDashboard(c *fiber.Ctx) error {
	data := statistics.GetDashboardData(repos)

	byStatus := map[string]int64{}
	for _, status := range []string{
		models.DonationStatusPending,
		models.DonationStatusPaid,
		models.DonationStatusFailed,
		models.DonationStatusCanceled,
	} {
		count, err := repos.Donation.CountByStatus(status)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to count donations")
		}
		byStatus[status] = count
	}

	centers, err := repos.Center.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to count centers")
	}

	totalNews, err := repos.News.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to count news")
	}

	latest, err := repos.News.ListAll(0, 5)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load latest news")
	}

	return render(c, "admin/dashboard", "Tableau de bord", nil, fiber.Map{
		"Stats":            data,
		"DonationsPending": byStatus[models.DonationStatusPending],
		"DonationsPaid":    byStatus[models.DonationStatusPaid],
		"DonationsFailed":  byStatus[models.DonationStatusFailed],
		"DonationsCancel":  byStatus[models.DonationStatusCanceled],
		"CentersCount":     centers,
		"TotalNews":        totalNews,
		"LatestNews":       latest,
	})
}

// HandleAdminDonations lists the most recent donations. ?export=csv streams
// the same rows as a CSV download instead.
func HandleAdminDonations(c *fiber.Ctx) error {
	donations, err := repos.Donation.ListRecent(200)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load donations")
	}

	if c.Query("export") == "csv" {
		return sendDonationsCSV(c, donations)
	}

	return render(c, "admin/donations", "Dons", nil, fiber.Map{
		"Donations": donations,
	})
}

func sendDonationsCSV(c *fiber.Ctx, donations []models.Donation) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"reference", "amount", "currency", "status", "email", "phone", "external_transaction_id", "created_at", "updated_at"})
	for _, d := range donations {
		_ = w.Write([]string{
			d.Reference,
			strconv.FormatInt(d.Amount, 10),
			d.Currency,
			d.Status,
			d.Email,
			d.Phone,
			d.ExternalTransactionID,
			d.CreatedAt.Format(time.RFC3339),
			d.UpdatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("CSV export failed")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="donations.csv"`)
	return c.Send(buf.Bytes())
}

// HandleAdminFedaPayDebug shows the processor configuration with the keys
// masked down to their first and last characters.
func HandleAdminFedaPayDebug(c *fiber.Ctx) error {
	cfg := paymentService.Config()

	return render(c, "admin/fedapay_debug", "FedaPay", nil, fiber.Map{
		"Mode":               cfg.Mode,
		"PublicKey":          payment.MaskKey(cfg.PublicKey, 6),
		"SecretKey":          payment.MaskKey(cfg.SecretKey, 6),
		"WebhookSecretSet":   cfg.WebhookSecret != "",
		"VerificationActive": cfg.VerificationActive(),
	})
}

// HandleAdminContacts lists contact messages, pending first.
func HandleAdminContacts(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	const perPage = 50

	messages, err := repos.Contact.List((page-1)*perPage, perPage)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load messages")
	}

	pending, err := repos.Contact.CountPending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to count messages")
	}

	return render(c, "admin/contacts", "Messages", nil, fiber.Map{
		"Messages": messages,
		"Pending":  pending,
		"Page":     page,
	})
}

// HandleAdminContactHandled marks one message as handled.
func HandleAdminContactHandled(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}

	if err := repos.Contact.MarkHandled(uint(id)); err != nil {
		fm := fiber.Map{"type": "error", "message": "Échec de la mise à jour."}
		return flash.WithError(c, fm).Redirect("/dashboard/contacts")
	}

	statistics.ResetCacheUpdateTimer()

	fm := fiber.Map{"type": "success", "message": "Message traité."}
	return flash.WithSuccess(c, fm).Redirect("/dashboard/contacts")
}

// HandleAdminGallery lists the collections and offers the create/import
// actions.
func HandleAdminGallery(c *fiber.Ctx) error {
	collections, err := repos.Gallery.ListCollectionsWithMedia()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load collections")
	}

	return render(c, "admin/gallery", "Galerie", nil, fiber.Map{
		"Collections": collections,
	})
}

// HandleAdminGalleryCreate creates a collection from the posted name and
// staging folder.
func HandleAdminGalleryCreate(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		fm := fiber.Map{"type": "error", "message": "Le nom est obligatoire."}
		return flash.WithError(c, fm).Redirect("/dashboard/gallery")
	}

	slug, err := slugify.MakeUnique(slugify.Slugify(name), 220, repos.Gallery.CollectionSlugExists)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Échec de la création."}
		return flash.WithError(c, fm).Redirect("/dashboard/gallery")
	}

	collection := &models.GalleryCollection{
		Name:         name,
		Slug:         slug,
		SourceFolder: c.FormValue("source_folder"),
	}
	if err := repos.Gallery.CreateCollection(collection); err != nil {
		fm := fiber.Map{"type": "error", "message": "Échec de la création."}
		return flash.WithError(c, fm).Redirect("/dashboard/gallery")
	}

	fm := fiber.Map{"type": "success", "message": "Collection créée."}
	return flash.WithSuccess(c, fm).Redirect("/dashboard/gallery")
}

// HandleAdminGalleryImport runs the bulk import for one collection.
func HandleAdminGalleryImport(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}

	collection, err := repos.Gallery.GetCollectionByID(uint(id))
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Collection introuvable."}
		return flash.WithError(c, fm).Redirect("/dashboard/gallery")
	}

	result, err := galleryImporter.Import(collection)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": fmt.Sprintf("Import échoué : %v", err)}
		return flash.WithError(c, fm).Redirect("/dashboard/gallery")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("%d fichiers importés, %d ignorés.", result.Imported, result.Skipped),
	}
	return flash.WithSuccess(c, fm).Redirect("/dashboard/gallery")
}
