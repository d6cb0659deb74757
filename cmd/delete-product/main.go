// Command delete-product is the Lambda function behind DELETE /products/{id}.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sakarghimire/product-management-service/internal/app"
	"github.com/sakarghimire/product-management-service/internal/handler"
)

func main() {
	a, err := app.New(true)
	if err != nil {
		log.Fatal("Failed to initialise function: ", err)
	}

	h := handler.New(a.Catalog, a.Logger)
	lambda.Start(h.Delete)
}
