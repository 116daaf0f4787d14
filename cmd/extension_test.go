package cmd

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	// 1. Create a temporary directory
	tempDir := t.TempDir()

	// 2. Create bsr-hello executable
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
}
`, EnvTradesFile, EnvTradesFile, EnvCurrency, EnvCurrency, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "bsr-hello")

	// Write source to a temporary file
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write bsr-hello source: %v", err)
	}
	log.Printf("Written bsr-hello source to %s", srcFile)

	// Compile bsr-hello
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile bsr-hello: %v", err)
	}
	log.Printf("Compiled bsr-hello to %s", helloCmdPath)

	// 3. Compile the main bsr binary
	bsrBinaryPath := filepath.Join(tempDir, "bsr")
	cmd = exec.Command("go", "build", "-o", bsrBinaryPath, "../bsr")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile bsr binary: %v", err)
	}
	log.Printf("Compiled bsr binary to %s", bsrBinaryPath)

	// Define random values for global flags
	expectedTradesFile := filepath.Join(tempDir, "random_trades.csv")
	expectedCurrency := "XYZ"
	expectedVerbose := true

	// 5. Call bsr binary with extension and global flags
	args := []string{
		"--trades", expectedTradesFile,
		"--currency", expectedCurrency,
		"-v",
		"hello", // The extension subcommand
	}

	// Use the compiled bsr binary directly
	bsrCmd := exec.Command(bsrBinaryPath, args...)
	oldPath := os.Getenv("PATH")
	bsrCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + oldPath}
	log.Printf("set Env=%s", bsrCmd.Env)

	var stdout, stderr bytes.Buffer
	bsrCmd.Stdout = &stdout
	bsrCmd.Stderr = &stderr

	if err := bsrCmd.Run(); err != nil {
		t.Fatalf("bsr command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	// 6. Verify output
	output := stdout.String()

	expectedEnvVars := []struct {
		Name  string
		Value string
	}{
		{EnvTradesFile, expectedTradesFile},
		{EnvCurrency, expectedCurrency},
		{EnvVerbose, strconv.FormatBool(expectedVerbose)},
	}

	for _, ev := range expectedEnvVars {
		expectedLine := fmt.Sprintf("%s=%s", ev.Name, ev.Value)
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}

	if stderr.Len() > 0 {
		t.Logf("Stderr from bsr command: %s", stderr.String())
	}
}
