package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/server"
	"google.golang.org/genai"
	"gorm.io/gorm"

	"kintai.app/kintai/ai/kintai"
	aiutils "kintai.app/kintai/ai/utils"
	"kintai.app/kintai/core"
)

var history = []*ai.Message{}

var model = googlegenai.GoogleAIModelRef("gemini-2.5-flash", &genai.GenerateContentConfig{
	MaxOutputTokens: 500,
	Temperature:     genai.Ptr[float32](0.0),
	TopP:            genai.Ptr[float32](0.4),
	TopK:            genai.Ptr[float32](5),
	ThinkingConfig: &genai.ThinkingConfig{
		ThinkingBudget: genai.Ptr[int32](0),
	},
})

type MonthInput struct {
	Month   string `json:"month" jsonschema_description:"Month in YYYY-MM format"`
	StaffID string `json:"staffId,omitempty" jsonschema_description:"Optional staff id to filter by"`
}

type TodayInput struct {
}

func main() {
	ctx := context.Background()

	// The chat assistant serves one owner per process; staff never talk to it.
	ownerID := os.Getenv("KINTAI_OWNER_ID")
	if ownerID == "" {
		log.Fatal("KINTAI_OWNER_ID is required")
	}

	dm, err := core.New(os.Getenv("DSN"), 5)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	// The Google AI plugin reads GEMINI_API_KEY from the environment.
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}, &kintai.KintaiPlugin{}))

	todayTool := genkit.DefineTool(g, "attendanceToday", "Get who is clocked in today and their status",
		func(tctx *ai.ToolContext, input TodayInput) (string, error) {
			result := ""
			if err := dm.Exec(context.Background(), func(db *gorm.DB) error {
				var err error
				result, err = kintai.TodaySummaryJSON(db, ownerID)
				return err
			}); err != nil {
				return "", err
			}
			return result, nil
		},
	)

	monthTool := genkit.DefineTool(g, "monthlySummary", "Get worked and overtime minutes for one month",
		func(tctx *ai.ToolContext, input MonthInput) (string, error) {
			result := ""
			if err := dm.Exec(context.Background(), func(db *gorm.DB) error {
				var err error
				result, err = kintai.MonthSummaryJSON(db, ownerID, input.Month, input.StaffID)
				return err
			}); err != nil {
				return "", err
			}
			return result, nil
		},
	)

	bot := genkit.DefineStreamingFlow(g, "kintai-chat", func(ctx context.Context, input string, cb ai.ModelStreamCallback) (string, error) {
		resp, err := genkit.Generate(ctx, g,
			ai.WithModel(model),
			ai.WithSystem(`
		You are an assistant for a small business attendance system.
		The user is the business owner. Staff clock in and out during the day;
		clock events form pairs, and monthly totals count only valid pairs
		(non-negative, at most 24 hours).

		Guidelines:
		1. Use the attendanceToday tool for questions about who is working right now or today.
		2. Use the monthlySummary tool for questions about hours, overtime, or totals in a month.
		3. All times shown to the user are Japan time.
		4. Overtime means time beyond 8 hours in one clocked pair.
		5. If a question needs a month and the user did not give one, ask for it instead of guessing.
		6. Never invent records; answer only from tool output.
			`),
			ai.WithStreaming(cb),
			ai.WithTools(todayTool, monthTool),
			ai.WithMessages(history...),
			ai.WithPrompt(input))
		if err != nil {
			return "", err
		}

		aiutils.PrintUsage(resp)
		history = resp.History()

		return resp.Text(), nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", genkit.Handler(bot))
	fmt.Println("chat assistant listening on 127.0.0.1:3400")
	log.Fatal(server.Start(ctx, "127.0.0.1:3400", mux))
}
