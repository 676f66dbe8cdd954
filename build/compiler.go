package build

import (
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/toanphambk/ts2scl/ast"
	"github.com/toanphambk/ts2scl/codegen"
	"github.com/toanphambk/ts2scl/meta"
	"github.com/toanphambk/ts2scl/report"
)

// Compiler runs the two-phase compilation for an entry file.  The registry
// is written only during collection and read only during generation; the
// visited-file set is the single contended structure of phase one.
type Compiler struct {
	loader   Loader
	reg      *meta.Registry
	defaults meta.BlockOptions

	visitedMu sync.Mutex
	visited   map[string]bool

	artMu     sync.Mutex
	artifacts []*codegen.Artifact
}

// NewCompiler creates a compiler over the given front end.  Block options
// not pinned by a declaration's attributes fall back to defaults.  The
// built-in timer and counter instructions are pre-registered.
func NewCompiler(loader Loader, defaults meta.BlockOptions) *Compiler {
	reg := meta.NewRegistry()
	meta.RegisterBuiltins(reg)

	return &Compiler{
		loader:   loader,
		reg:      reg,
		defaults: defaults,
		visited:  make(map[string]bool),
	}
}

// Registry exposes the metadata store for diagnostics.
func (c *Compiler) Registry() *meta.Registry {
	return c.reg
}

// Compile collects metadata from the entry file and everything it reaches,
// then generates an artifact per attributed declaration of the entry file.
// Artifacts are returned sorted by name; ok is false when any error was
// reported.
func (c *Compiler) Compile(entryPath string) (arts []*codegen.Artifact, ok bool) {
	entry := c.collect(entryPath)
	if entry == nil {
		return nil, false
	}

	c.generate(entry)

	sort.Slice(c.artifacts, func(i, j int) bool {
		return c.artifacts[i].Name+c.artifacts[i].Suffix < c.artifacts[j].Name+c.artifacts[j].Suffix
	})

	return c.artifacts, report.ShouldProceed()
}

// -----------------------------------------------------------------------------

// collect visits a file and, concurrently, its imports, registering every
// attributed declaration.  Each file is processed exactly once; a failing
// file is reported and contributes nothing, and collection continues.
func (c *Compiler) collect(path string) *ast.File {
	c.visitedMu.Lock()
	seen := c.visited[path]
	c.visited[path] = true
	c.visitedMu.Unlock()

	if seen {
		return nil
	}

	file, err := c.loader.Load(path)
	if err != nil {
		report.ReportFileError(path, err)
		return nil
	}

	c.register(file)

	var wg sync.WaitGroup
	for _, spec := range file.Imports {
		spec := spec

		wg.Add(1)
		go func() {
			defer wg.Done()

			resolved, err := c.loader.Resolve(file.Path, spec)
			if err != nil {
				report.ReportFileError(file.Path, err)
				return
			}

			c.collect(resolved)
		}()
	}
	wg.Wait()

	return file
}

func (c *Compiler) register(file *ast.File) {
	for _, class := range file.Classes {
		bm, ok := meta.ExtractBlock(class, c.defaults)
		if !ok {
			continue
		}

		if method := class.BodyMethod(); method != nil && (bm.Category == meta.FC || bm.Category == meta.FB) {
			bm.BodyMethod = method.Name
			c.reg.RegisterProps(meta.PropOwnerKey(bm.Name, method.Name), meta.ExtractParams(method))
		}

		c.reg.Register(bm)
		c.reg.RegisterProps(bm.Name, meta.ExtractFields(class))
	}
}

// -----------------------------------------------------------------------------

// generate runs phase two: every attributed declaration of the entry file
// generates independently, in category order UDT, DB, FC, FB.  An error is
// fatal only for its own declaration.
func (c *Compiler) generate(entry *ast.File) {
	gen := codegen.NewGenerator(c.reg)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, cat := range []meta.BlockCategory{meta.UDT, meta.DB, meta.FC, meta.FB} {
		for _, class := range entry.Classes {
			bm, ok := c.reg.LookupAny(class.Name)
			if !ok || bm.Category != cat {
				continue
			}

			class := class
			g.Go(func() error {
				c.generateOne(gen, class)
				return nil
			})
		}
	}

	g.Wait()
}

func (c *Compiler) generateOne(gen *codegen.Generator, class *ast.ClassDecl) {
	art, records, err := gen.Generate(class)
	if err != nil {
		report.ReportBlockError(class.Name, err)
		return
	}

	c.addArtifact(art)

	for _, rec := range records {
		if rec.Kind != meta.InstanceSingle {
			report.ReportBlockWarning(class.Name,
				"instance %s has kind %s; no instance data block emitted", rec.Name, rec.Kind)
			continue
		}

		instArt, err := gen.InstanceDB(rec, c.defaults)
		if err != nil {
			report.ReportBlockError(class.Name, err)
			continue
		}

		c.addArtifact(instArt)
	}
}

func (c *Compiler) addArtifact(art *codegen.Artifact) {
	c.artMu.Lock()
	c.artifacts = append(c.artifacts, art)
	c.artMu.Unlock()
}
