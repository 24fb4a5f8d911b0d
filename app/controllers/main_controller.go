package controllers

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/app/repository"
	"github.com/enfantsenjoie/eejsite/internal/pkg/constants"
	"github.com/enfantsenjoie/eejsite/internal/pkg/content"
	"github.com/enfantsenjoie/eejsite/internal/pkg/gallery"
	"github.com/enfantsenjoie/eejsite/internal/pkg/loginguard"
	"github.com/enfantsenjoie/eejsite/internal/pkg/payment"
	"github.com/enfantsenjoie/eejsite/internal/pkg/viewmodel"
)

// Shared controller dependencies, set up once by InitializeControllers.
var (
	repos           *repository.Repositories
	contentService  *content.Service
	paymentService  *payment.Service
	galleryImporter *gallery.Importer
	loginGuard      *loginguard.Guard
)

// InitializeControllers wires every controller to the repository factory
// and the domain services. An invalid payment configuration aborts startup:
// running live with webhook verification disabled must never happen.
func InitializeControllers() {
	repos = repository.GetGlobalRepositories()

	cfg := payment.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("payment configuration rejected: %v", err)
	}

	contentService = content.NewService(repos.News, repos.Category)
	paymentService = payment.NewService(cfg, repos.Donation)
	galleryImporter = gallery.NewImporter(repos.Gallery, constants.MediaPath)
	loginGuard = loginguard.New()
}

// HandleStart renders the home page
func HandleStart(c *fiber.Ctx) error {
	highlights, err := contentService.Highlights(6)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load highlights")
	}

	upcoming, err := contentService.List(content.ListFilter{Upcoming: true})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load events")
	}
	upcomingCards := upcoming.Cards
	if len(upcomingCards) > 3 {
		upcomingCards = upcomingCards[:3]
	}

	latestPosts, err := contentService.LatestPosts(3)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load posts")
	}

	metrics, err := repos.Metrics.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load metrics")
	}

	og := &viewmodel.OpenGraph{
		Title:       "ONG Enfants En Joie",
		Description: "Ensemble pour l'épanouissement des enfants au Bénin",
		Image:       "/img/eej-logo.png",
		URL:         "/",
	}
	return render(c, "pages/home", "Accueil", og, fiber.Map{
		"Highlights":  highlights,
		"Upcoming":    upcomingCards,
		"LatestPosts": latestPosts,
		"Metrics":     metrics,
	})
}

// HandleAbout renders the about page with the centers, the running events
// and the impact metrics. The building gallery is best effort: a missing
// folder simply renders nothing.
func HandleAbout(c *fiber.Ctx) error {
	centers, err := repos.Center.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load centers")
	}

	metrics, err := repos.Metrics.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load metrics")
	}

	events, err := contentService.List(content.ListFilter{Kind: "event"})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load events")
	}

	building := buildingGalleryImages()

	og := &viewmodel.OpenGraph{
		Title:       "À propos - ONG Enfants En Joie",
		Description: "Notre mission, nos centres et notre impact",
		Image:       "/img/eej-logo.png",
		URL:         "/a-propos",
	}
	return render(c, "pages/about", "À propos", og, fiber.Map{
		"Centers":  centers,
		"Metrics":  metrics,
		"Events":   events.Cards,
		"Building": building,
	})
}

// HandleDonate renders the donation page with the metrics and the form.
func HandleDonate(c *fiber.Ctx) error {
	metrics, err := repos.Metrics.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load metrics")
	}

	og := &viewmodel.OpenGraph{
		Title:       "Faire un don - ONG Enfants En Joie",
		Description: "Soutenez nos actions pour les enfants",
		Image:       "/img/eej-logo.png",
		URL:         "/donner",
	}
	return render(c, "pages/donate", "Faire un don", og, fiber.Map{
		"Metrics":       metrics,
		"DefaultAmount": payment.DefaultAmount,
		"MinimumAmount": payment.MinimumAmount,
	})
}

// buildingGalleryImages lists the images of the static construction-site
// folder. Errors yield an empty slice.
func buildingGalleryImages() []string {
	dir := filepath.Join(constants.MediaPath, "construction")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if models.DetectMediaKind(entry.Name()) != models.MediaKindImage {
			continue
		}
		images = append(images, "/"+filepath.ToSlash(filepath.Join(dir, entry.Name())))
	}
	return images
}
