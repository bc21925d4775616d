// Command atm is a console teller simulator over a single in-memory account.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go-stock-ledger/internal/atm"
)

func main() {
	teller := atm.New(0)
	in := bufio.NewScanner(os.Stdin)

	for {
		printMenu()
		fmt.Print("Enter your choice (1-5): ")
		if !in.Scan() {
			return
		}

		switch strings.TrimSpace(in.Text()) {
		case "1":
			fmt.Printf("\nYour current balance is: $%.2f\n", teller.Balance())
		case "2":
			deposit(teller, in)
		case "3":
			withdraw(teller, in)
		case "4":
			printHistory(teller)
		case "5":
			fmt.Println("\nThank you for using the ATM. Have a great day!")
			return
		default:
			fmt.Println("Invalid option. Please select a valid choice (1-5).")
		}
	}
}

func printMenu() {
	fmt.Println("\n================ Welcome to the ATM =================")
	fmt.Println("Please select an option:")
	fmt.Println("1. Check Balance")
	fmt.Println("2. Deposit Money")
	fmt.Println("3. Withdraw Money")
	fmt.Println("4. View Transaction History")
	fmt.Println("5. Exit")
	fmt.Println("=====================================================")
}

func readAmount(in *bufio.Scanner, prompt string) (float64, bool) {
	for {
		fmt.Print(prompt)
		if !in.Scan() {
			return 0, false
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(in.Text()), 64)
		if err != nil {
			fmt.Println("Invalid amount. Please enter a numeric value.")
			continue
		}
		return amount, true
	}
}

func deposit(teller *atm.Teller, in *bufio.Scanner) {
	for {
		amount, ok := readAmount(in, "\nEnter the amount to deposit: $")
		if !ok {
			return
		}
		balance, err := teller.Deposit(amount)
		if err != nil {
			fmt.Println("Please enter a positive amount to deposit.")
			continue
		}
		fmt.Printf("Successfully deposited $%.2f. New balance is $%.2f\n", amount, balance)
		return
	}
}

func withdraw(teller *atm.Teller, in *bufio.Scanner) {
	for {
		amount, ok := readAmount(in, "\nEnter the amount to withdraw: $")
		if !ok {
			return
		}
		balance, err := teller.Withdraw(amount)
		switch err {
		case nil:
			fmt.Printf("Successfully withdrew $%.2f. New balance is $%.2f\n", amount, balance)
			return
		case atm.ErrInsufficientFunds:
			fmt.Println("Insufficient balance for this withdrawal.")
		default:
			fmt.Println("Please enter a positive amount to withdraw.")
		}
	}
}

func printHistory(teller *atm.Teller) {
	fmt.Println("\nTransaction History:")
	history := teller.History()
	if len(history) == 0 {
		fmt.Println("No transactions yet.")
		return
	}
	for i, entry := range history {
		fmt.Printf("%d. %s\n", i+1, entry)
	}
}
