package parser

import "testing"

func TestExtractScriptBlocksPrefersSetup(t *testing.T) {
	src := []byte(`
<template><div/></template>
<script lang="ts">
export const legacy = 1;
</script>
<script setup lang="ts">
export const fromSetup = 2;
</script>
`)
	blocks := ExtractScriptBlocks(src)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 script blocks, got %d", len(blocks))
	}

	block, ok := PreferredScriptBlock(blocks)
	if !ok {
		t.Fatal("expected a preferred block")
	}
	if !block.Setup {
		t.Error("expected the <script setup> block to be preferred")
	}
	if block.Lang != "ts" {
		t.Errorf("expected lang ts, got %q", block.Lang)
	}
}

func TestExtractScriptBlocksDefaultLang(t *testing.T) {
	src := []byte(`<script>export const x = 1;</script>`)
	blocks := ExtractScriptBlocks(src)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Lang != "js" {
		t.Errorf("expected default lang js, got %q", blocks[0].Lang)
	}
}

func TestBuildModuleFactsFromVueSFC(t *testing.T) {
	src := []byte(`
<template><div/></template>
<script setup lang="ts">
import { ref } from "vue";
export const count = ref(0);
</script>
`)
	facts := BuildModuleFacts("Counter.vue", src)
	if len(facts.Imports) != 1 || facts.Imports[0].Specifier != "vue" {
		t.Fatalf("expected one import of vue, got %+v", facts.Imports)
	}
	if len(facts.Exports) != 1 || facts.Exports[0].Name != "count" {
		t.Fatalf("expected export count, got %+v", facts.Exports)
	}
}

func TestScriptExtension(t *testing.T) {
	cases := map[string]string{"ts": ".ts", "tsx": ".tsx", "jsx": ".jsx", "js": ".js", "": ".js"}
	for lang, want := range cases {
		if got := ScriptExtension(lang); got != want {
			t.Errorf("ScriptExtension(%q) = %q, want %q", lang, got, want)
		}
	}
}
