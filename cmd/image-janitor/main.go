// Command image-janitor consumes the products table stream and removes images
// that no product references any more.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sakarghimire/product-management-service/internal/app"
	"github.com/sakarghimire/product-management-service/internal/janitor"
)

func main() {
	a, err := app.New(true)
	if err != nil {
		log.Fatal("Failed to initialise function: ", err)
	}

	j := janitor.New(a.Catalog, a.Logger)
	lambda.Start(j.Handle)
}
