package docs

import "github.com/swaggo/swag"

// @title           Taskboard API
// @version         1.0
// @description     API for managing shared task boards, columns, cards and membership

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration, login and profile operations

// @tag.name Boards
// @tag.description Board management operations

// @tag.name Members
// @tag.description Board membership and role operations

// @tag.name Columns
// @tag.description Column management operations

// @tag.name Cards
// @tag.description Card management operations

// Register swagger info
func SwaggerInfo() *swag.Spec {
	spec, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return spec
}
