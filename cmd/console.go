// Package cmd holds the console front ends: the customer purchase
// flow, the ticket wallet, the staff validation prompt and the stub
// backend runner.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"astra-cinemas/internal/api"
	"astra-cinemas/internal/usecase"
	"astra-cinemas/internal/workflow"
	"astra-cinemas/pkg/utils"

	"go.uber.org/zap"
)

// Movies prints the catalog of movies in exhibition.
func Movies(ctx context.Context, service *usecase.Service) error {
	movies, err := service.Catalog.NowShowing(ctx)
	if err != nil {
		fmt.Println(api.UserMessage(err))
		return err
	}

	fmt.Println("Em cartaz:")
	for _, m := range movies {
		fmt.Printf("  [%s] %s (%d min, classificação %s)\n", m.ID, m.Titulo, m.DuracaoMinutos, m.Classificacao)
		fmt.Printf("       %s\n", m.Sinopse)
	}
	return nil
}

// Showtimes prints the sessions of one movie.
func Showtimes(ctx context.Context, service *usecase.Service, filmeID string) error {
	showtimes, err := service.Catalog.Showtimes(ctx, filmeID)
	if err != nil {
		fmt.Println(api.UserMessage(err))
		return err
	}

	fmt.Printf("Sessões do filme %s:\n", filmeID)
	for _, st := range showtimes {
		fmt.Printf("  [%s] %s %s — %d/%d livres (%s)\n",
			st.ID, st.Sala, st.Inicio, st.Disponiveis, st.Capacidade, st.Status)
	}
	return nil
}

// Dashboard prints the landing bundle; each block degrades
// independently when its fetch failed.
func Dashboard(ctx context.Context, service *usecase.Service) {
	data := service.Catalog.Dashboard(ctx)

	fmt.Printf("Filmes em cartaz: %d\n", len(data.Movies))
	for _, m := range data.Movies {
		fmt.Printf("  [%s] %s\n", m.ID, m.Titulo)
	}
	fmt.Printf("Ingresso inteiro: %s | meia: %s\n",
		utils.FormatPrice(data.Prices.IngressoInteiro),
		utils.FormatPrice(data.Prices.IngressoMeia),
	)
	fmt.Printf("Produtos na bomboniere: %d\n", len(data.Products))
}

// Tickets reconciles and prints the local ticket wallet.
func Tickets(ctx context.Context, service *usecase.Service, clienteID string) {
	tickets := service.Tickets.Refresh(ctx, clienteID)
	if len(tickets) == 0 {
		fmt.Println("Nenhum ingresso ativo.")
		return
	}

	fmt.Println("Ingressos ativos:")
	for _, t := range tickets {
		fmt.Printf("  %s — assento %s (%s) código %s\n", t.Filme, t.Assento, t.Tipo, t.Codigo)
	}
}

// Validate runs one staff-console scan check.
func Validate(ctx context.Context, service *usecase.Service, codigo string) error {
	result, err := service.Staff.ValidateTicket(ctx, codigo)
	if err != nil {
		fmt.Println(api.UserMessage(err))
		return err
	}

	if result.Valido {
		fmt.Printf("OK: %s\n", result.Mensagem)
	} else {
		fmt.Printf("RECUSADO: %s\n", result.Mensagem)
	}
	return nil
}

// Cancel voids an order for rebooking.
func Cancel(ctx context.Context, service *usecase.Service, compraID string) error {
	if err := service.Staff.CancelOrder(ctx, compraID); err != nil {
		fmt.Println(api.UserMessage(err))
		return err
	}
	fmt.Println("Compra cancelada.")
	return nil
}

// Purchase drives the interactive purchase flow on stdin/stdout. Every
// stage transition is an explicit command; nothing auto-advances.
func Purchase(ctx context.Context, client *api.Client, config *utils.Config, log *zap.Logger, sessaoID string) error {
	if config.Backend.ClienteID == "" {
		fmt.Println("Defina CLIENTE_ID para comprar ingressos.")
		return errors.New("missing cliente id")
	}

	p := workflow.NewPurchase(client, config.Backend.ClienteID, sessaoID, config.Backend.QRDir, log)
	if err := p.Start(ctx); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		printStage(p)

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := dispatch(ctx, p, strings.Fields(strings.TrimSpace(line)))
		if err != nil {
			printError(err)
		}
		if done {
			return nil
		}
	}
}

// printError maps a workflow or client error onto the text the user
// sees: validation messages inline, backend messages verbatim, a
// generic connectivity message for transport failures.
func printError(err error) {
	var vErr *workflow.ValidationError
	switch {
	case errors.As(err, &vErr):
		fmt.Println(vErr.Msg)
	case errors.Is(err, workflow.ErrWrongStage):
		fmt.Println("Ação não permitida nesta etapa.")
	default:
		fmt.Println(api.UserMessage(err))
	}
}

func dispatch(ctx context.Context, p *workflow.Purchase, args []string) (done bool, err error) {
	if len(args) == 0 {
		return false, nil
	}

	switch args[0] {
	case "sair":
		p.Teardown()
		return true, nil

	case "voltar":
		if exited := p.Back(); exited {
			fmt.Println("Compra abandonada.")
			return true, nil
		}
		return false, nil

	case "continuar", "pular":
		return false, p.Next(ctx)

	case "assento":
		if len(args) < 2 {
			return false, nil
		}
		if !p.ToggleSeat(args[1]) {
			fmt.Printf("Assento %s indisponível.\n", args[1])
		}
		return false, nil

	case "tipo":
		if len(args) < 2 {
			return false, nil
		}
		return false, p.SetTicketType(workflow.TicketType(strings.ToUpper(args[1])))

	case "add":
		if len(args) < 2 {
			return false, nil
		}
		return false, p.AddItem(args[1])

	case "rm":
		if len(args) < 2 {
			return false, nil
		}
		return false, p.RemoveItem(args[1])

	case "pagamento":
		if len(args) < 2 {
			return false, nil
		}
		return false, p.SetPaymentMethod(workflow.PaymentMethod(args[1]))

	case "confirmar":
		confirmation, err := p.Submit(ctx)
		if err != nil {
			return false, err
		}
		printConfirmation(confirmation)
		p.Teardown()
		return true, nil
	}

	fmt.Println("Comandos: assento <id> | tipo <inteira|meia> | add <produto> | rm <produto> | pagamento <pix|credito|debito> | continuar | voltar | confirmar | sair")
	return false, nil
}

func printStage(p *workflow.Purchase) {
	totals := p.Totals()

	switch p.Stage() {
	case workflow.StageSeatSelection:
		fmt.Println("-- Escolha seus assentos --")
		if p.SeatMap().Fallback {
			fmt.Println("(mapa ilustrativo: sem conexão com o servidor)")
		}
		for _, row := range p.SeatMap().Rows() {
			fmt.Printf("%s: ", row.Letra)
			for _, seat := range row.Assentos {
				marker := seat.ID
				switch {
				case p.Cart().HasSeat(seat.ID):
					marker = "[" + seat.ID + "]"
				case !seat.Disponivel:
					marker = " --- "
				}
				fmt.Printf("%s ", marker)
			}
			fmt.Println()
		}
		fmt.Printf("Selecionados: %v\n", p.Cart().Seats())

	case workflow.StageTicketType:
		fmt.Printf("-- Tipo de ingresso (atual: %s) --\n", p.Cart().TicketType())

	case workflow.StageConcessions:
		fmt.Println("-- Bomboniere (opcional) --")
		for _, product := range p.Products() {
			fmt.Printf("  [%s] %s %s (estoque %d) x%d\n",
				product.ID, product.Nome, utils.FormatPrice(product.Preco),
				product.Estoque, p.Cart().Quantity(product.ID))
		}

	case workflow.StagePayment:
		fmt.Printf("-- Pagamento (atual: %s) --\n", p.Cart().PaymentMethod())
	}

	fmt.Printf("Ingressos: %s | Bomboniere: %s | Total: %s\n",
		utils.FormatPrice(totals.TicketSubtotal),
		utils.FormatPrice(totals.ConcessionsSubtotal),
		utils.FormatPrice(totals.GrandTotal),
	)
}

func printConfirmation(c *workflow.Confirmation) {
	fmt.Println("Compra confirmada!")
	fmt.Printf("  Pedido %s — total %s (%s)\n",
		c.Order.ID, utils.FormatPrice(c.Order.Total), c.Order.FormaPagamento)
	for _, ingresso := range c.Order.Ingressos {
		fmt.Printf("  Assento %s — código %s", ingresso.Assento, ingresso.Codigo)
		if path, ok := c.QRPaths[ingresso.ID]; ok {
			fmt.Printf(" (QR em %s)", path)
		}
		fmt.Println()
	}
}
