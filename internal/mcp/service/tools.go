package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/basilisk/internal/mcp/domain"
)

func registerCrisisTools(mcpServer *mcp.Server, svc domain.Service) {
	mcp.AddTool(mcpServer, domain.CrisisStartTool(), domain.CrisisStartHandler(svc))
	mcp.AddTool(mcpServer, domain.CrisisStatusTool(), domain.CrisisStatusHandler(svc))
	mcp.AddTool(mcpServer, domain.CrisisSubmitTool(), domain.CrisisSubmitHandler(svc))
	mcp.AddTool(mcpServer, domain.CrisisConsultTool(), domain.CrisisConsultHandler(svc))
}
