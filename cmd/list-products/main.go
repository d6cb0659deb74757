// Command list-products is the Lambda function behind GET /products.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sakarghimire/product-management-service/internal/app"
	"github.com/sakarghimire/product-management-service/internal/handler"
)

func main() {
	a, err := app.New(false)
	if err != nil {
		log.Fatal("Failed to initialise function: ", err)
	}

	h := handler.New(a.Catalog, a.Logger)
	lambda.Start(h.List)
}
