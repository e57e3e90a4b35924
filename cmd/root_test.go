package cmd

import (
	"bytes"
	"testing"
)

func TestRootRunE_ShowVersion(t *testing.T) {
	oldShow := showVersion
	defer func() { showVersion = oldShow }()

	showVersion = true
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	if err := rootCmd.RunE(rootCmd, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected version output")
	}
}

func TestRootRunE_NoArgsShowsHelp(t *testing.T) {
	oldShow := showVersion
	defer func() { showVersion = oldShow }()

	showVersion = false
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	if err := rootCmd.RunE(rootCmd, nil); err != nil {
		t.Fatalf("RunE no args error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected help output")
	}
}

func TestGenOptions_JoinsArgsIntoPrompt(t *testing.T) {
	oldStyle, oldTopic, oldNum := style, topic, num
	defer func() { style, topic, num = oldStyle, oldTopic, oldNum }()

	style, topic, num = "hài hước", "", 3
	opts := genOptions([]string{"một", "ngày", "mưa"})
	if opts.Prompt != "một ngày mưa" {
		t.Fatalf("prompt=%q", opts.Prompt)
	}
	if opts.Style != "hài hước" || opts.Num != 3 {
		t.Fatalf("unexpected opts: %+v", opts)
	}
}

func TestRootCommands_Registered(t *testing.T) {
	for _, path := range [][]string{
		{"gen"}, {"version"}, {"set", "key"}, {"history", "list"},
		{"history", "export"}, {"history", "import"}, {"history", "clear"},
		{"stats"}, {"check"},
	} {
		c, _, err := rootCmd.Find(path)
		if err != nil || c == rootCmd {
			t.Fatalf("command %v not registered: %v", path, err)
		}
	}
}
