package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/trollfjell/imalink-web/internal/pkg/metrics/counter"
	"github.com/trollfjell/imalink-web/internal/pkg/statistics"
)

// HandleHome renders the landing page with cached corpus counters.
func HandleHome(c *fiber.Ctx) error {
	if statistics.ShouldUpdateCache() {
		refreshStatistics(c)
	}
	stats := statistics.GetStatisticsData()

	return c.Render("index", fiber.Map{
		"Page":  "home",
		"IsDev": isDev(c),
		"Stats": stats,
		"Flash": flash.Get(c),
	}, "layouts/main")
}

func refreshStatistics(c *fiber.Ctx) {
	data := statistics.StatisticsData{
		CachedPhotos: photoCache.Len(),
	}

	if collections, err := apiClient.ListCollections(c.Context()); err == nil {
		data.Collections = len(collections)
	} else {
		log.Warnf("[Home] collection count unavailable: %v", err)
	}

	if views, err := counter.GetAllCollectionViews(); err == nil {
		for _, n := range views {
			data.CollectionViews += n
		}
	}

	if err := statistics.UpdateStatisticsCache(data); err != nil {
		log.Warnf("[Home] statistics cache update failed: %v", err)
	}
}
