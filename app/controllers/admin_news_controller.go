package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/internal/pkg/constants"
	"github.com/enfantsenjoie/eejsite/internal/pkg/mediaprocessor"
	"github.com/enfantsenjoie/eejsite/internal/pkg/slugify"
	"github.com/enfantsenjoie/eejsite/internal/pkg/statistics"
)

const adminNewsPerPage = 25

// datetime-local inputs post this layout.
const formDateTimeLayout = "2006-01-02T15:04"

// HandleAdminNews lists all news items for management.
func HandleAdminNews(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	items, err := repos.News.ListAll((page-1)*adminNewsPerPage, adminNewsPerPage)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load news")
	}

	total, err := repos.News.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to count news")
	}

	return render(c, "admin/news_list", "Actualités", nil, fiber.Map{
		"Items": items,
		"Page":  page,
		"Total": total,
	})
}

// HandleAdminNewsCreate renders the creation form.
func HandleAdminNewsCreate(c *fiber.Ctx) error {
	categories, err := repos.Category.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load categories")
	}

	return render(c, "admin/news_form", "Nouvel article", nil, fiber.Map{
		"Item":             &models.NewsItem{Kind: models.NewsKindPost, Status: models.NewsStatusDraft},
		"Categories":       categories,
		"SelectedCategory": uint(0),
		"Action":           "/dashboard/news/store",
	})
}

// HandleAdminNewsStore creates a news item from the posted form, assigns
// its slug once and runs the media pipeline.
func HandleAdminNewsStore(c *fiber.Ctx) error {
	item := &models.NewsItem{}
	if err := fillNewsItemFromForm(c, item); err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect("/dashboard/news/create")
	}

	slug, err := slugify.MakeUnique(slugify.Slugify(item.Title), 220, repos.News.SlugExists)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Échec de la génération du lien."}
		return flash.WithError(c, fm).Redirect("/dashboard/news/create")
	}
	item.Slug = slug

	if err := item.Validate(); err != nil {
		fm := fiber.Map{"type": "error", "message": validationMessage(err)}
		return flash.WithError(c, fm).Redirect("/dashboard/news/create")
	}

	if err := attachCover(c, item); err != nil {
		fm := fiber.Map{"type": "error", "message": "Échec de l'envoi de l'image de couverture."}
		return flash.WithError(c, fm).Redirect("/dashboard/news/create")
	}

	if err := repos.News.Create(item); err != nil {
		fm := fiber.Map{"type": "error", "message": "Échec de l'enregistrement."}
		return flash.WithError(c, fm).Redirect("/dashboard/news/create")
	}

	if err := attachMedia(c, item); err != nil {
		fm := fiber.Map{"type": "error", "message": "Article créé mais certains médias ont échoué."}
		return flash.WithError(c, fm).Redirect("/dashboard/news")
	}

	statistics.ResetCacheUpdateTimer()

	fm := fiber.Map{"type": "success", "message": "Article créé."}
	return flash.WithSuccess(c, fm).Redirect("/dashboard/news")
}

// HandleAdminNewsEdit renders the edit form.
func HandleAdminNewsEdit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}

	item, err := repos.News.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article introuvable")
	}

	categories, err := repos.Category.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load categories")
	}

	var selected uint
	if item.CategoryID != nil {
		selected = *item.CategoryID
	}

	return render(c, "admin/news_form", "Modifier l'article", nil, fiber.Map{
		"Item":             item,
		"Categories":       categories,
		"SelectedCategory": selected,
		"Action":           fmt.Sprintf("/dashboard/news/update/%d", item.ID),
	})
}

// HandleAdminNewsUpdate applies the posted form to an existing item. The
// slug never changes once assigned; it is only generated when absent
// (legacy rows).
func HandleAdminNewsUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	editURL := fmt.Sprintf("/dashboard/news/edit/%d", id)

	item, err := repos.News.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article introuvable")
	}

	if err := fillNewsItemFromForm(c, item); err != nil {
		fm := fiber.Map{"type": "error", "message": err.Error()}
		return flash.WithError(c, fm).Redirect(editURL)
	}

	if item.Slug == "" {
		slug, err := slugify.MakeUnique(slugify.Slugify(item.Title), 220, func(s string) (bool, error) {
			return repos.News.SlugExistsExceptID(s, item.ID)
		})
		if err != nil {
			fm := fiber.Map{"type": "error", "message": "Échec de la génération du lien."}
			return flash.WithError(c, fm).Redirect(editURL)
		}
		item.Slug = slug
	}

	if err := item.Validate(); err != nil {
		fm := fiber.Map{"type": "error", "message": validationMessage(err)}
		return flash.WithError(c, fm).Redirect(editURL)
	}

	if err := attachCover(c, item); err != nil {
		fm := fiber.Map{"type": "error", "message": "Échec de l'envoi de l'image de couverture."}
		return flash.WithError(c, fm).Redirect(editURL)
	}

	if err := repos.News.Update(item); err != nil {
		fm := fiber.Map{"type": "error", "message": "Échec de l'enregistrement."}
		return flash.WithError(c, fm).Redirect(editURL)
	}

	if err := attachMedia(c, item); err != nil {
		fm := fiber.Map{"type": "error", "message": "Article modifié mais certains médias ont échoué."}
		return flash.WithError(c, fm).Redirect("/dashboard/news")
	}

	statistics.ResetCacheUpdateTimer()

	fm := fiber.Map{"type": "success", "message": "Article modifié."}
	return flash.WithSuccess(c, fm).Redirect("/dashboard/news")
}

// HandleAdminNewsDelete removes an item; its media rows cascade.
func HandleAdminNewsDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}

	if err := repos.News.Delete(uint(id)); err != nil {
		fm := fiber.Map{"type": "error", "message": "Échec de la suppression."}
		return flash.WithError(c, fm).Redirect("/dashboard/news")
	}

	statistics.ResetCacheUpdateTimer()

	fm := fiber.Map{"type": "success", "message": "Article supprimé."}
	return flash.WithSuccess(c, fm).Redirect("/dashboard/news")
}

// fillNewsItemFromForm copies the posted fields onto the item. Kind and
// date rules are enforced later by Normalize/Validate.
func fillNewsItemFromForm(c *fiber.Ctx, item *models.NewsItem) error {
	item.Title = strings.TrimSpace(c.FormValue("title"))
	item.Body = c.FormValue("body")
	item.Location = strings.TrimSpace(c.FormValue("location"))

	switch c.FormValue("kind") {
	case models.NewsKindEvent:
		item.Kind = models.NewsKindEvent
	default:
		item.Kind = models.NewsKindPost
	}

	switch c.FormValue("status") {
	case models.NewsStatusPublished:
		item.Status = models.NewsStatusPublished
	default:
		item.Status = models.NewsStatusDraft
	}

	item.CategoryID = nil
	if raw := c.FormValue("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err == nil && id > 0 {
			cid := uint(id)
			item.CategoryID = &cid
		}
	}

	var err error
	if item.EventStart, err = parseFormTime(c.FormValue("event_start")); err != nil {
		return errors.New("Date de début invalide.")
	}
	if item.EventEnd, err = parseFormTime(c.FormValue("event_end")); err != nil {
		return errors.New("Date de fin invalide.")
	}

	if item.Title == "" {
		return errors.New("Le titre est obligatoire.")
	}
	return nil
}

func parseFormTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(formDateTimeLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validationMessage(err error) string {
	if errors.Is(err, models.ErrEventEndBeforeStart) {
		return "La fin de l'événement doit être après son début."
	}
	return "Merci de vérifier les champs du formulaire."
}

// attachCover stores an uploaded cover under a uuid filename and queues
// the optimization pipeline. No file posted is not an error.
func attachCover(c *fiber.Ctx, item *models.NewsItem) error {
	file, err := c.FormFile("cover")
	if err != nil || file == nil {
		return nil
	}

	path, err := saveUpload(c, file, filepath.Join("news", "covers"))
	if err != nil {
		return err
	}

	item.CoverImagePath = "/" + filepath.ToSlash(path)
	mediaprocessor.ProcessCover(path)
	return nil
}

// attachMedia stores every uploaded attachment and records it in display
// order after the existing media.
func attachMedia(c *fiber.Ctx, item *models.NewsItem) error {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	files := form.File["media"]
	if len(files) == 0 {
		return nil
	}

	order := len(item.Media)
	for _, file := range files {
		path, err := saveUpload(c, file, "news")
		if err != nil {
			return err
		}
		media := &models.NewsMedia{
			NewsItemID: item.ID,
			FilePath:   "/" + filepath.ToSlash(path),
			Caption:    c.FormValue("caption"),
			Order:      order,
		}
		if err := repos.News.AddMedia(media); err != nil {
			return err
		}
		order++
	}
	return nil
}

// saveUpload writes a multipart file under the media root with a uuid
// filename and returns the stored path.
func saveUpload(c *fiber.Ctx, file *multipart.FileHeader, subDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	dir := filepath.Join(constants.MediaPath, subDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := c.SaveFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}
