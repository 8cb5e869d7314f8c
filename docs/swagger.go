package docs

import "github.com/swaggo/swag"

// @title           Questboard API
// @version         1.0
// @description     API for a Minecraft modpack team dashboard: shared tasks with crafting material checklists, plus quest and quest-line state synchronized from the game client.

// @host      localhost:8080
// @BasePath  /

// @tag.name Tasks
// @tag.description Shared team task management

// @tag.name Materials
// @tag.description Crafting material checklists scoped to a task

// @tag.name Users
// @tag.description Player records keyed by Minecraft UUID

// @tag.name Sync
// @tag.description Quest and quest-line facts pushed by the Minecraft mod

// @tag.name Quests
// @tag.description Quest definitions and per-player progress

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Questboard API",
	Description:      "Team dashboard for a Minecraft modpack community",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
