package models

import (
	"fmt"

	"github.com/lib/pq"
)

// ModuleSeed is a catalog entry before persistence (slug assigned at seed time).
type ModuleSeed struct {
	Code        string
	Title       string
	Description string
	Objective   string
	Application string
	Icon        string
	IsPremium   bool
	Quizzes     []Quiz
}

// lessonTopics are the 15 generated lesson themes shared by every module,
// matching the product's lesson arc.
var lessonTopics = []string{
	"Como o jogo começa", "Regras do sistema", "O que faz o preço mudar",
	"Equilíbrio: O ponto ideal", "Entendendo reações", "Impacto no seu futuro",
	"Exemplos da vida real", "Onde o sistema falha", "Novas tecnologias",
	"O papel do governo", "Contas sem medo", "Prevendo o amanhã",
	"Estratégia de mestre", "Protegendo o que é seu", "Resumo Alpha",
}

// GenerateLessons builds the 15-lesson arc for a module. In free modules only
// the first three lessons are open; everything else requires a paid plan.
func GenerateLessons(moduleCode string, modulePremium bool) []Lesson {
	lessons := make([]Lesson, 0, len(lessonTopics))
	for i, topic := range lessonTopics {
		typ := LessonTypePractical
		switch {
		case i%5 == 0:
			typ = LessonTypeDeepDive
		case i%2 == 0:
			typ = LessonTypeTheory
		}
		lessons = append(lessons, Lesson{
			ID:         fmt.Sprintf("l%s-%d", moduleCode[1:], i+1),
			ModuleCode: moduleCode,
			Title:      topic,
			Type:       typ,
			Duration:   "15-20min",
			IsPremium:  modulePremium || i > 2,
			Content: fmt.Sprintf("[SISTEMA MONEYLAB - CONTEÚDO SIMPLIFICADO]\n\n"+
				"Este tópico sobre %s foi preparado para ser direto ao ponto.\n\n"+
				"Use a síntese via Terminal IA para ver a explicação completa com "+
				"exemplos divertidos e analogias fáceis.", topic),
			Position: i + 1,
		})
	}
	return lessons
}

// ModuleCatalog is the full course catalog. Modules m1–m18 are free,
// m19–m25 are premium.
var ModuleCatalog = []ModuleSeed{
	{
		Code: "m1", Title: "O Início: Como o Mundo Funciona",
		Description: "Entenda por que as coisas custam dinheiro e como as trocas acontecem.",
		Objective:   "Aprender a base de tudo: por que não podemos ter tudo o que queremos.",
		Application: "Entender como o dinheiro circula no seu dia a dia.",
		Icon:        "🌍",
		Quizzes: []Quiz{{
			ID: "q1-1", ModuleCode: "m1",
			Question:      "Por que a economia existe?",
			Options:       pq.StringArray{"Porque o dinheiro é infinito", "Porque os recursos são limitados", "Para o governo mandar", "Para as lojas ganharem"},
			CorrectAnswer: 1,
			Explanation:   "Como os recursos são limitados e nossos desejos não, precisamos de economia para escolher bem.",
		}},
	},
	{
		Code: "m2", Title: "FPP: O Poder das Suas Escolhas",
		Description: "Aprenda a decidir o que produzir e o que você ganha ou perde em cada escolha.",
		Objective:   "Dominar o conceito de que escolher uma coisa significa abrir mão de outra.",
		Application: "Melhorar suas decisões pessoais e de tempo.",
		Icon:        "⚖️",
	},
	{
		Code: "m3", Title: "Matemática Amigável",
		Description: "A lógica dos números explicada de um jeito que qualquer um entende.",
		Objective:   "Perder o medo das equações básicas da economia.",
		Application: "Calcular trocas e lucros simples.",
		Icon:        "🔢",
	},
	{
		Code: "m4", Title: "Oferta e Procura",
		Description: "Por que o preço do ingresso ou do jogo sobe e desce?",
		Objective:   "Entender como os compradores e vendedores decidem o preço.",
		Application: "Saber a hora certa de comprar algo.",
		Icon:        "🛒",
	},
	{
		Code: "m5", Title: "Ganhando o Máximo (Otimização)",
		Description: "Como empresas decidem quanto produzir para não ter prejuízo.",
		Objective:   "Entender o conceito de lucro máximo de forma visual.",
		Application: "Entender a lógica por trás de grandes negócios.",
		Icon:        "💰",
	},
	{
		Code: "m6", Title: "Elasticidade: O Povo Reage?",
		Description: "Se o preço subir, as pessoas param de comprar? Vamos descobrir.",
		Objective:   "Entender a sensibilidade dos consumidores.",
		Application: "Analisar se um negócio é bom ou arriscado.",
		Icon:        "🎈",
	},
	{
		Code: "m7", Title: "Dinheiro no Tempo (Juros)",
		Description: "O segredo para fazer o dinheiro trabalhar para você enquanto você dorme.",
		Objective:   "Dominar os juros compostos da forma mais simples possível.",
		Application: "Começar a planejar sua independência financeira.",
		Icon:        "⏳",
	},
	{
		Code: "m8", Title: "Desejos do Consumidor",
		Description: "O que faz a gente querer comprar uma marca e não outra?",
		Objective:   "Entender a lógica da satisfação e do marketing.",
		Application: "Ser um consumidor mais consciente.",
		Icon:        "🛍️",
	},
	{
		Code: "m9", Title: "Por Dentro das Fábricas",
		Description: "Como as grandes marcas produzem em escala e reduzem custos.",
		Objective:   "Entender como o mundo corporativo se organiza.",
		Application: "Ter visão de dono de empresa.",
		Icon:        "🏭",
	},
	{
		Code: "m10", Title: "Monopólios e Competição",
		Description: "Por que algumas empresas dominam tudo e outras lutam para surpreender.",
		Objective:   "Identificar quem manda no mercado.",
		Application: "Saber investir nas empresas certas.",
		Icon:        "👑",
	},
	{
		Code: "m11", Title: "Quando as Coisas Dão Errado",
		Description: "Poluição, trânsito e outros problemas que o mercado nem sempre resolve.",
		Objective:   "Entender as falhas do sistema e o papel das regras.",
		Application: "Ter uma visão crítica sobre sustentabilidade.",
		Icon:        "🛑",
	},
	{
		Code: "m12", Title: "A Riqueza do País (PIB)",
		Description: "Como a gente mede se o Brasil está indo bem ou mal.",
		Objective:   "Aprender o que é o PIB sem complicação.",
		Application: "Acompanhar o noticiário econômico sem medo.",
		Icon:        "🇧🇷",
	},
	{
		Code: "m13", Title: "Inflação: O Vilão dos Preços",
		Description: "Por que o seu dinheiro comprava mais coisas no passado do que hoje.",
		Objective:   "Entender a perda do poder de compra e como se proteger.",
		Application: "Proteger seu salário e suas economias.",
		Icon:        "🎈",
	},
	{
		Code: "m14", Title: "Governo e Impostos",
		Description: "Para onde vai o seu dinheiro e como o governo mexe na economia.",
		Objective:   "Entender juros (Selic) e gastos públicos.",
		Application: "Saber como as decisões de Brasília afetam seu bolso.",
		Icon:        "🏛️",
	},
	{
		Code: "m15", Title: "O Mundo Conectado",
		Description: "Dólar, importação e por que tudo o que acontece lá fora afeta você.",
		Objective:   "Entender o comércio global e viagens.",
		Application: "Planejar compras internacionais e câmbio.",
		Icon:        "✈️",
	},
	{
		Code: "m16", Title: "Teoria dos Jogos",
		Description: "Aprenda a negociar e prever o que os outros vão fazer.",
		Objective:   "Dominar a estratégia em negociações reais.",
		Application: "Negociar melhor no trabalho e na vida.",
		Icon:        "♟️",
	},
	{
		Code: "m17", Title: "Guia do Investidor Iniciante",
		Description: "Como sair do zero e começar a construir seu patrimônio.",
		Objective:   "Aprender a diferença entre ativos e passivos.",
		Application: "Dar os primeiros passos com segurança.",
		Icon:        "🚀",
	},
	{
		Code: "m18", Title: "Dados e Previsões",
		Description: "Como usar planilhas e IA para tentar adivinhar o futuro do mercado.",
		Objective:   "Aprender o básico de estatística aplicada.",
		Application: "Tomar decisões baseadas em dados.",
		Icon:        "📊",
	},
	{
		Code: "m19", Title: "Seguros e Proteção",
		Description: "Como não perder tudo se algo der errado no mercado.",
		Objective:   "Entender proteção de carteira e risco.",
		Application: "Montar uma rede de segurança financeira.",
		Icon:        "🛡️",
		IsPremium:   true,
	},
	{
		Code: "m20", Title: "Cripto e o Futuro do Dinheiro",
		Description: "Bitcoin, Ethereum e por que o dinheiro digital veio para ficar.",
		Objective:   "Entender a tecnologia por trás das criptomoedas.",
		Application: "Avaliar o mundo cripto com senso crítico.",
		Icon:        "₿",
		IsPremium:   true,
	},
	{
		Code: "m21", Title: "Investindo em Ideias (Startups)",
		Description: "Como funciona o mundo das empresas que valem bilhões.",
		Objective:   "Entender como nascem e crescem as gigantes de tecnologia.",
		Application: "Reconhecer oportunidades de venture capital.",
		Icon:        "🦄",
		IsPremium:   true,
	},
	{
		Code: "m22", Title: "Quanto Vale uma Empresa?",
		Description: "Aprenda a calcular o preço real de uma ação.",
		Objective:   "Saber se uma ação está barata ou cara.",
		Application: "Avaliar empresas antes de investir.",
		Icon:        "💎",
		IsPremium:   true,
	},
	{
		Code: "m23", Title: "A Cabeça do Mercado",
		Description: "Por que as pessoas entram em pânico ou ficam eufóricas.",
		Objective:   "Controlar suas emoções e entender o comportamento de massa.",
		Application: "Investir sem seguir a manada.",
		Icon:        "🧠",
		IsPremium:   true,
	},
	{
		Code: "m24", Title: "Robôs Investidores",
		Description: "Como os algoritmos operam na bolsa de valores em milissegundos.",
		Objective:   "Entender a tecnologia dos grandes bancos e fundos.",
		Application: "Conhecer o trading quantitativo por dentro.",
		Icon:        "🤖",
		IsPremium:   true,
	},
	{
		Code: "m25", Title: "Legado e Liberdade",
		Description: "Como manter e crescer sua riqueza por gerações.",
		Objective:   "Planejar o futuro a longo prazo.",
		Application: "Construir um plano de independência definitivo.",
		Icon:        "🏰",
		IsPremium:   true,
	},
}
