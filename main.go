// Command product-management-service serves every products route from a single
// Lambda function. The per-route functions live under cmd/.
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
	lambda.Start(h.Route)
}
