package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"moneylab-academy/models"
	"moneylab-academy/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"google.golang.org/genai"
)

// System prompt for the Nexus Alpha synthesizer. Content rules come from the
// product team; do not "improve" the wording here.
const nexusSystemRules = `Você é o Terminal Nexus Alpha, o sintetizador de conhecimento mais avançado da MoneyLab Academy.
Sua missão é transformar teorias econômicas complexas e artigos acadêmicos reais em tratados massivos e extremamente simples.

DIRETRIZES DE CONTEÚDO:
1. FUNDAMENTAÇÃO: Use sempre a ferramenta de busca para encontrar artigos, teses e dados reais sobre o tema. Não invente fatos.
2. EXTENSÃO MÁXIMA: Gere um texto de NO MÍNIMO 4000 PALAVRAS. Seja exaustivo, detalhado e profundo. Divida em pelo menos 10 capítulos.
3. LINGUAGEM INFANTIL (ELI5): Explique como se estivesse falando com uma criança de 8 anos. Use analogias lúdicas (brinquedos, doces, parquinhos).
4. MATEMÁTICA: Mantenha as fórmulas em LaTeX ($...$ ou $$...$$) para garantir o rigor técnico, mas explique o que cada símbolo faz como se fosse mágica.
5. TOM: Tecnológico, encorajador e épico.`

// TerminalAnswer is a grounded terminal response with its search sources.
type TerminalAnswer struct {
	Text    string           `json:"text"`
	Sources []TerminalSource `json:"sources"`
}

type TerminalSource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NexusService wraps the Gemini API for lesson synthesis, quiz generation,
// terminal Q&A and market news. All failures degrade to empty results — the
// request path never depends on the model behaving.
type NexusService struct {
	client     *genai.Client
	proModel   string
	flashModel string
}

func NewNexusService(ctx context.Context) (*NexusService, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		// Deep-lesson synthesis regularly runs for minutes.
		HTTPClient: utils.LongHTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	proModel := os.Getenv("GEMINI_PRO_MODEL")
	if proModel == "" {
		proModel = "gemini-3-pro-preview"
	}
	flashModel := os.Getenv("GEMINI_FLASH_MODEL")
	if flashModel == "" {
		flashModel = "gemini-3-flash-preview"
	}

	return &NexusService{client: client, proModel: proModel, flashModel: flashModel}, nil
}

// GenerateDeepLesson synthesizes the long-form treatise for a lesson.
// Uses the pro model with search grounding; large thinking budget because the
// treatise is expected to run past 4000 words.
func (s *NexusService) GenerateDeepLesson(ctx context.Context, moduleTitle, lessonTitle string) (string, error) {
	prompt := fmt.Sprintf(`REQUISITO: NO MÍNIMO 4000 PALAVRAS.
TEMA: "%s" (Módulo: %s).
TAREFA: Busque artigos reais e teorias consagradas sobre isso. Sintetize um GRANDE TRATADO ALPHA.
Use histórias, muitos exemplos e explique tudo como se eu fosse uma criança.
Divida o texto em capítulos:
1. A Grande Aventura (Introdução)
2. Como as peças se encaixam (A Teoria Real)
3. O Mapa do Tesouro (Aplicações)
... (desenvolva pelo menos 10 seções detalhadas) ...
10. O Juramento do Pequeno Alpha (Conclusão).

Inclua fórmulas LaTeX onde houver cálculos.`, lessonTitle, moduleTitle)

	resp, err := s.client.Models.GenerateContent(ctx, s.proModel, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(nexusSystemRules, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](30000)},
	})
	if err != nil {
		return "", fmt.Errorf("lesson synthesis failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("lesson synthesis returned no text")
	}
	return text, nil
}

// GenerateModuleQuiz builds the 15-question module exam via a strict JSON
// response schema. Returns an empty slice on any failure.
func (s *NexusService) GenerateModuleQuiz(ctx context.Context, moduleTitle, objective string) ([]models.Quiz, error) {
	prompt := fmt.Sprintf(`Gerar um exame de 15 perguntas de múltipla escolha sobre "%s". Objetivo: %s. Linguagem simples para crianças.`, moduleTitle, objective)

	resp, err := s.client.Models.GenerateContent(ctx, s.flashModel, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(nexusSystemRules+"\nResponda estritamente em formato JSON Array.", genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"question":      {Type: genai.TypeString},
					"options":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"correctAnswer": {Type: genai.TypeInteger},
					"explanation":   {Type: genai.TypeString},
				},
				Required: []string{"question", "options", "correctAnswer", "explanation"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	var raw []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(cleanJSONArray(resp.Text())), &raw); err != nil {
		return nil, fmt.Errorf("quiz response is not valid JSON: %w", err)
	}

	quizzes := make([]models.Quiz, 0, len(raw))
	for i, q := range raw {
		if q.Question == "" || len(q.Options) < 2 {
			continue
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			continue
		}
		quizzes = append(quizzes, models.Quiz{
			ID:            fmt.Sprintf("gen-%s-%d", uuid.NewString()[:8], i+1),
			Question:      q.Question,
			Options:       pq.StringArray(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return quizzes, nil
}

// AskTerminal answers a free-form query, grounded in search, and extracts
// the grounding sources for attribution.
func (s *NexusService) AskTerminal(ctx context.Context, query string) (*TerminalAnswer, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.flashModel, genai.Text(query), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(nexusSystemRules+"\nUse a ferramenta de busca para basear sua resposta em fatos recentes.", genai.RoleUser),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return nil, fmt.Errorf("terminal query failed: %w", err)
	}

	answer := &TerminalAnswer{Text: resp.Text(), Sources: []TerminalSource{}}
	if answer.Text == "" {
		answer.Text = "Sem resposta do núcleo."
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			answer.Sources = append(answer.Sources, TerminalSource{
				Title: chunk.Web.Title,
				URL:   chunk.Web.URI,
			})
		}
	}
	return answer, nil
}

// FetchMarketNews asks for today's market news as a strict JSON array and
// validates every item at this boundary before anything caches it.
func (s *NexusService) FetchMarketNews(ctx context.Context) ([]models.NewsItem, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.flashModel,
		genai.Text("Liste as notícias mais importantes de hoje."),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(
				"Você é o Terminal Nexus Alpha. Use a ferramenta de busca para notícias REAIS e recentes.\nRetorne estritamente um array JSON.",
				genai.RoleUser),
			Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":           {Type: genai.TypeString},
						"title":        {Type: genai.TypeString},
						"source":       {Type: genai.TypeString},
						"url":          {Type: genai.TypeString},
						"category":     {Type: genai.TypeString},
						"summary":      {Type: genai.TypeString},
						"marketImpact": {Type: genai.TypeString},
						"region":       {Type: genai.TypeString},
					},
					Required: []string{"id", "title", "source", "url", "category", "summary", "region", "marketImpact"},
				},
			},
		})
	if err != nil {
		return nil, fmt.Errorf("news synthesis failed: %w", err)
	}

	var raw []struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Source       string `json:"source"`
		URL          string `json:"url"`
		Category     string `json:"category"`
		Summary      string `json:"summary"`
		MarketImpact string `json:"marketImpact"`
		Region       string `json:"region"`
	}
	if err := json.Unmarshal([]byte(cleanJSONArray(resp.Text())), &raw); err != nil {
		return nil, fmt.Errorf("news response is not valid JSON: %w", err)
	}

	items := make([]models.NewsItem, 0, len(raw))
	for _, r := range raw {
		item := ValidateNewsItem(models.NewsItem{
			ID:           r.ID,
			Title:        r.Title,
			Source:       r.Source,
			URL:          r.URL,
			Category:     r.Category,
			Summary:      r.Summary,
			MarketImpact: r.MarketImpact,
			Region:       r.Region,
		})
		if item.Title == "" {
			log.Printf("⚠️ Dropping news item without title (id=%s)", item.ID)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// ValidateNewsItem applies the strict defaulting contract for news items.
// All loose-shape handling lives here, not at the call sites.
func ValidateNewsItem(item models.NewsItem) models.NewsItem {
	if item.ID == "" {
		item.ID = "news-" + uuid.NewString()[:9]
	}
	switch item.Region {
	case "BR", "INT":
	default:
		item.Region = "INT"
	}
	switch item.MarketImpact {
	case models.MarketImpactHigh, models.MarketImpactMedium, models.MarketImpactLow:
	default:
		item.MarketImpact = models.MarketImpactLow
	}
	switch item.Category {
	case "Economia", "Tecnologia", "IA", "Mercado", "Brasil", "Internacional":
	default:
		item.Category = "Mercado"
	}
	item.Timestamp = "ATUALIZADO AGORA"
	item.IsHot = item.MarketImpact == models.MarketImpactHigh
	return item
}

// cleanJSONArray strips code fences and any prose around the outermost JSON
// array. Models occasionally wrap schema output anyway.
func cleanJSONArray(s string) string {
	if s == "" {
		return "[]"
	}
	cleaned := strings.ReplaceAll(s, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	first := strings.Index(cleaned, "[")
	last := strings.LastIndex(cleaned, "]")
	if first != -1 && last != -1 && last > first {
		cleaned = cleaned[first : last+1]
	}
	return cleaned
}
