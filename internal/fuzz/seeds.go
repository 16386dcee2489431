package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

const maxFuzzInput = 1 << 16

var fragmentSeeds = []string{
	"",
	"fn f(x:int)requires x>0{ assert(x>=0); }",
	"verus!{\nproof fn lemma(n: nat) ensures n + 0 == n, decreases n { }\n}",
	"spec fn max(a: int, b: int) -> int { if a >= b { a } else { b } }",
	"fn f() { assert(forall|i: int| 0 <= i < 10 ==> a[i] > 0) by { reveal(p); } }",
	"fn f() -> (r: u8) ensures r == 1, { 1 }",
	"fn f() { while i < n invariant i <= n, decreases n - i { i += 1; } }",
	"exec fn g(Ghost(x): Ghost<int>, Tracked(t): Tracked<T>) {}",
	"/* a /* nested */ b */ fn f() {} // trailing\n",
	"#![allow(unused)]\n#[verifier::external_body]\npub fn f() {}",
	"impl<T: Clone> S<T> where T: Copy { fn get(&self) -> &T { &self.x } }",
	"fn f() { match x { Some(y) if y > 0 => {}, _ => () } }",
	"fn f() { let s = r##\"raw \"# str\"##; let c = b'x'; }",
	"fn f() { &&& a &&& b ||| c }",
}

func addCorpusSeeds(f *testing.F) {
	addSnapshotSeeds(f)
	for _, s := range fragmentSeeds {
		f.Add([]byte(s))
	}
}

func addSnapshotSeeds(f *testing.F) {
	root := filepath.Join("..", "format", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
