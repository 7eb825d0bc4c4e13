// Command gridtest runs the scanning pipeline on a puzzle image and
// prints stage-by-stage diagnostics.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"sudoku-scan/internal/puzzle"
	"sudoku-scan/internal/recognize"
	"sudoku-scan/internal/vision"
)

func main() {
	imagePath := flag.String("image", "", "Path to puzzle image (TIFF, PNG, or JPEG)")
	showConfidence := flag.Bool("confidence", false, "Print the per-cell confidence grid")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: gridtest -image <path> [-confidence]")
		os.Exit(1)
	}

	gray, err := vision.LoadGrayFile(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	defer gray.Close()
	fmt.Printf("Loaded image: %dx%d pixels\n", gray.Cols(), gray.Rows())

	start := time.Now()

	raster := vision.Preprocess(gray)
	defer raster.Close()

	quad, err := vision.LocateGrid(raster.Binary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Grid detection failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Boundary corners: TL(%.0f,%.0f) TR(%.0f,%.0f) BR(%.0f,%.0f) BL(%.0f,%.0f)\n",
		quad[0].X, quad[0].Y, quad[1].X, quad[1].Y,
		quad[2].X, quad[2].Y, quad[3].X, quad[3].Y)
	fmt.Printf("Boundary area: %.0f px², aspect %.2f\n", quad.Area(), quad.AspectRatio())

	corrected, err := vision.CorrectPerspective(raster.Gray, quad)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Perspective correction failed: %v\n", err)
		os.Exit(1)
	}
	defer corrected.Close()

	cells, err := vision.ExtractCells(corrected)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cell extraction failed: %v\n", err)
		os.Exit(1)
	}
	defer vision.CloseCells(cells)
	fmt.Printf("Extracted %d cells\n", len(cells))

	engine, err := recognize.NewEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize OCR engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	matcher := recognize.NewTemplateMatcher()
	defer matcher.Close()
	ensemble := recognize.NewEnsemble(recognize.DefaultPolicy(), engine, matcher)

	var grid puzzle.Grid
	var confidence [puzzle.Size][puzzle.Size]float64
	uncertain := 0
	for _, cell := range cells {
		res, err := ensemble.Recognize(cell.Image)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Recognition failed at (%d,%d): %v\n", cell.Row, cell.Col, err)
			os.Exit(1)
		}
		grid[cell.Row][cell.Col] = res.Value
		confidence[cell.Row][cell.Col] = res.Confidence
		if res.Uncertain {
			uncertain++
		}
	}

	fmt.Printf("\nDetected grid (%d givens, %d uncertain, %.2fs):\n",
		len(grid.Givens()), uncertain, time.Since(start).Seconds())
	printGrid(&grid)

	if *showConfidence {
		fmt.Println("\nConfidence:")
		for r := 0; r < puzzle.Size; r++ {
			row := make([]string, puzzle.Size)
			for c := 0; c < puzzle.Size; c++ {
				row[c] = fmt.Sprintf("%.2f", confidence[r][c])
			}
			fmt.Println("  " + strings.Join(row, " "))
		}
	}

	valid, conflicts := puzzle.Validate(grid)
	if !valid {
		fmt.Printf("\nPuzzle invalid, %d conflicts:\n", len(conflicts))
		for _, c := range conflicts {
			fmt.Printf("  - %s\n", c)
		}
		os.Exit(1)
	}

	sol := puzzle.SolveIterative(grid)
	if !sol.Solvable {
		fmt.Println("\nPuzzle is valid but has no solution")
		os.Exit(1)
	}

	fmt.Printf("\nSolution (unique: %v):\n", sol.Unique)
	printGrid(&sol.Grid)
}

func printGrid(g *puzzle.Grid) {
	for r := 0; r < puzzle.Size; r++ {
		row := make([]string, puzzle.Size)
		for c := 0; c < puzzle.Size; c++ {
			if g[r][c] == 0 {
				row[c] = "."
			} else {
				row[c] = fmt.Sprintf("%d", g[r][c])
			}
		}
		fmt.Println("  " + strings.Join(row, " "))
	}
}
