package handlers

import (
	repo "github.com/rqxKnicklicht/visynet-productivity-tool/internal/repo"
)

var productRepo repo.ProductRepository

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}
