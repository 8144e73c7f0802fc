package cmd

import (
	"context"
	"fmt"
	"image"
	"log"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/jinzhu/gorm"
	"github.com/spf13/viper"
	"github.com/tattybubutashtanova/histmatch/imp"
	"github.com/tattybubutashtanova/histmatch/input"
	"github.com/tattybubutashtanova/histmatch/models"
)

// Opens the configured database, making sure its schema is up to date.
func openDB() (*gorm.DB, error) {
	db, err := models.Open(viper.GetString("db"))
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to db: %w", err)
	}
	if err := models.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newFetcher() *input.Fetcher {
	return &input.Fetcher{
		Client:   &http.Client{Timeout: viper.GetDuration("fetch.timeout")},
		MaxBytes: viper.GetInt64("fetch.max_bytes"),
	}
}

// Reads a grayscale image from a file or an URL.
func openImage(location string) (*image.Gray, error) {
	return newFetcher().Open(context.Background(), location)
}

func saveImage(filename string, img image.Image) error {
	if err := imp.Save(filename, img, imaging.JPEGQuality(viper.GetInt("jpeg.quality"))); err != nil {
		return err
	}
	log.Println("Saved", filename)
	return nil
}

// Resolves a stored reference by name, tolerating typos.
func loadReference(db *gorm.DB, name string) (models.Reference, imp.Histogram, error) {
	ref, score, err := models.FindClosestReference(db, models.LocalScope, name)
	if err != nil {
		return ref, imp.Histogram{}, err
	}
	if score > 0 {
		log.Printf("No reference named %q, using closest match %q", name, ref.Name)
	}
	h, err := ref.Histogram()
	return ref, h, err
}
