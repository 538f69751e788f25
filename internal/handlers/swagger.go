package handlers

// @title Demo App API
// @version 1.0
// @description Serverless user, data processing and analytics endpoints.

// @contact.name API Support
// @contact.email support@demo-app.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /

// @tag.name users
// @tag.description User registration and lookup

// @tag.name processing
// @tag.description Data processing results

// @tag.name analytics
// @tag.description Store and invocation statistics

// @tag.name files
// @tag.description Files bucket listing (local server only)
