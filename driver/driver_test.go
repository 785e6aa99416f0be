package driver_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/snova/gae-deployer/appcfg/fakes"
	"github.com/snova/gae-deployer/driver"
	"github.com/snova/gae-deployer/executor"
	"github.com/snova/gae-deployer/prompt"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var _ = Describe("Driver", func() {
	var tool *fakes.FakeTool
	var output *gbytes.Buffer
	var logOutput *gbytes.Buffer
	var input string
	var policy executor.ErrorPolicy
	var settings driver.Settings
	var errorLogDir string

	var argv []string
	var runErr error

	BeforeEach(func() {
		tool = new(fakes.FakeTool)
		output = gbytes.NewBuffer()
		logOutput = gbytes.NewBuffer()
		policy = executor.StopOnFirstError

		var err error
		errorLogDir, err = ioutil.TempDir("", "gae-deployer-driver-")
		Expect(err).NotTo(HaveOccurred())

		settings = driver.Settings{
			Version:     "v0.17.2",
			SourcePath:  "/opt/deployer/src",
			ProxyURL:    "http://127.0.0.1:48100",
			ErrorLogDir: errorLogDir,
		}
		argv = []string{"gae-deployer"}
	})

	AfterEach(func() {
		Expect(os.RemoveAll(errorLogDir)).To(Succeed())
	})

	JustBeforeEach(func() {
		prompter := prompt.NewLinePrompter(strings.NewReader(input), output)
		logger := boshlog.NewWriterLogger(boshlog.LevelDebug, logOutput)
		d := driver.NewDriver(prompter, tool, executor.NewSerialExecutor(policy), settings, logger)
		runErr = d.Run(argv)
	})

	errorLogs := func() []string {
		matches, err := filepath.Glob(filepath.Join(errorLogDir, "deployer-*.err.log"))
		Expect(err).NotTo(HaveOccurred())
		return matches
	}

	Context("when arguments are passed", func() {
		BeforeEach(func() {
			argv = []string{"gae-deployer", "-h"}
			input = ""
		})

		It("forwards them verbatim without prompting", func() {
			Expect(runErr).NotTo(HaveOccurred())
			Expect(tool.RunCallCount()).To(Equal(1))

			args, env := tool.RunArgsForCall(0)
			Expect(args).To(Equal([]string{"-h"}))
			Expect(env).To(BeEmpty())
			Expect(output.Contents()).To(BeEmpty())
		})

		Context("and appcfg exits non-zero", func() {
			BeforeEach(func() {
				argv = []string{"gae-deployer", "update", "src", "-A", "app1"}
				tool.RunReturns(3, errors.New("exit status 3"))
			})

			It("exits with the same status", func() {
				Expect(runErr).To(BeAssignableToTypeOf(&cli.ExitError{}))
				Expect(runErr.(*cli.ExitError).ExitCode()).To(Equal(3))
			})
		})

		Context("and appcfg cannot be started", func() {
			BeforeEach(func() {
				tool.RunReturns(-1, errors.New("python: not found"))
			})

			It("exits with status 1 and the error", func() {
				Expect(runErr).To(BeAssignableToTypeOf(&cli.ExitError{}))
				Expect(runErr.(*cli.ExitError).ExitCode()).To(Equal(1))
				Expect(runErr.Error()).To(ContainSubstring("python: not found"))
			})
		})
	})

	Context("when no arguments are passed", func() {
		Context("and the user declines email and proxy with two app ids", func() {
			BeforeEach(func() {
				input = "n\n\nn\napp1, app2.v2\n\n"
			})

			It("prints the banner and prompts in order", func() {
				Expect(output).To(gbytes.Say(`==================Snova\(Go\)Deployer v0.17.2===================`))
				Expect(output).To(gbytes.Say(`Specify google email account first\? \(y/n, default n\):`))
				Expect(output).To(gbytes.Say(`Enter your action\?\(0:update/1:rollback, default 0\):`))
				Expect(output).To(gbytes.Say(`Use local proxy\(http://127.0.0.1:48100\) for deploy\? \(y/n, default n\):`))
				Expect(output).To(gbytes.Say(`Enter appid, use ',' as separator if you have more than 1 appid.`))
				Expect(output).To(gbytes.Say(`AppID: `))
			})

			It("runs appcfg once per app id in order", func() {
				Expect(runErr).NotTo(HaveOccurred())
				Expect(tool.RunCallCount()).To(Equal(2))

				args, env := tool.RunArgsForCall(0)
				Expect(args).To(Equal([]string{"--skip_sdk_update_check", "update", "/opt/deployer/src", "-A", "app1"}))
				Expect(env).To(BeEmpty())

				args, env = tool.RunArgsForCall(1)
				Expect(args).To(Equal([]string{"--skip_sdk_update_check", "update", "/opt/deployer/src", "-A", "app2", "-V", "v2"}))
				Expect(env).To(BeEmpty())
			})

			It("wraps each invocation in start and end banners", func() {
				Expect(output).To(gbytes.Say(`==============Start update AppID:app1===============`))
				Expect(output).To(gbytes.Say(`==============End update AppID:app1===============`))
				Expect(output).To(gbytes.Say(`==============Start update AppID:app2.v2===============`))
				Expect(output).To(gbytes.Say(`==============End update AppID:app2.v2===============`))
				Expect(output).To(gbytes.Say(`Enter to exit:`))
			})

			It("does not write an error log", func() {
				Expect(errorLogs()).To(BeEmpty())
			})
		})

		Context("and an email is given", func() {
			BeforeEach(func() {
				input = "y\nme@example.com\n1\nn\napp1\n\n"
			})

			It("disables cookies and rolls back", func() {
				Expect(tool.RunCallCount()).To(Equal(1))
				args, _ := tool.RunArgsForCall(0)
				Expect(args).To(Equal([]string{
					"--skip_sdk_update_check", "rollback", "/opt/deployer/src", "-e", "me@example.com", "--no_cookies", "-A", "app1",
				}))
			})
		})

		Context("and the email answer is empty", func() {
			BeforeEach(func() {
				input = "Y\n\n0\nn\napp1\n\n"
			})

			It("keeps using cookies", func() {
				args, _ := tool.RunArgsForCall(0)
				Expect(args).NotTo(ContainElement("--no_cookies"))
				Expect(args).NotTo(ContainElement("-e"))
			})
		})

		Context("and the action choice is invalid", func() {
			BeforeEach(func() {
				input = "n\n2\nn\napp1\n\n"
			})

			It("warns and updates", func() {
				Expect(output).To(gbytes.Say(`\[WARN\]:Invalid action choice:2, use default 'update' instead`))
				args, _ := tool.RunArgsForCall(0)
				Expect(args[1]).To(Equal("update"))
			})
		})

		Context("and the proxy is accepted", func() {
			BeforeEach(func() {
				input = "n\n\ny\napp1,app2\n\n"
			})

			It("routes every invocation through the proxy", func() {
				Expect(tool.RunCallCount()).To(Equal(2))
				for i := 0; i < 2; i++ {
					_, env := tool.RunArgsForCall(i)
					Expect(env).To(Equal(map[string]string{
						"http_proxy":  "http://127.0.0.1:48100",
						"https_proxy": "http://127.0.0.1:48100",
					}))
				}
			})

			It("leaves the driver's own environment alone", func() {
				Expect(os.Getenv("http_proxy")).NotTo(Equal("http://127.0.0.1:48100"))
			})
		})

		Context("and no proxy is configured", func() {
			BeforeEach(func() {
				settings.ProxyURL = ""
				input = "n\n\napp1\n\n"
			})

			It("does not ask about the proxy", func() {
				Expect(output.Contents()).NotTo(ContainSubstring("Use local proxy"))
				args, env := tool.RunArgsForCall(0)
				Expect(args).To(ContainElement("app1"))
				Expect(env).To(BeEmpty())
			})
		})

		Context("and no app id is entered", func() {
			BeforeEach(func() {
				input = "n\n\nn\n , \n\n"
			})

			It("warns and runs nothing", func() {
				Expect(runErr).NotTo(HaveOccurred())
				Expect(tool.RunCallCount()).To(Equal(0))
				Expect(output).To(gbytes.Say(`\[WARN\]:No AppID entered`))
			})
		})

		Context("and the input ends early", func() {
			BeforeEach(func() {
				input = "n\n"
			})

			It("uses the defaults and exits cleanly", func() {
				Expect(runErr).NotTo(HaveOccurred())
				Expect(tool.RunCallCount()).To(Equal(0))
			})
		})

		Context("and appcfg fails for one of three app ids", func() {
			BeforeEach(func() {
				input = "n\n\nn\napp1,app2,app3\n\n"
				tool.RunReturnsOnCall(1, 1, errors.New("exit status 1"))
			})

			It("reports the failure", func() {
				Expect(runErr).NotTo(HaveOccurred())
				Expect(output).To(gbytes.Say(`==============End update AppID:app1===============`))
				Expect(output).To(gbytes.Say(`==============Start update AppID:app2===============`))
				Expect(output).To(gbytes.Say(`\[ERROR\]:Failed to update AppID:app2, exit status 1`))
				Expect(output).To(gbytes.Say(`1 out of 3 app ids failed to update`))
				Expect(output.Contents()).NotTo(ContainSubstring("End update AppID:app2"))
				Expect(logOutput).To(gbytes.Say("1 out of 3 app ids failed to update: app2"))
			})

			It("writes the stack traces to the error log", func() {
				logs := errorLogs()
				Expect(logs).To(HaveLen(1))

				contents, err := ioutil.ReadFile(logs[0])
				Expect(err).NotTo(HaveOccurred())
				Expect(string(contents)).To(ContainSubstring("AppID app2: exit status 1"))
			})

			Context("when stopping on the first error", func() {
				It("skips the remaining app ids", func() {
					Expect(tool.RunCallCount()).To(Equal(2))
					Expect(output).To(gbytes.Say(`\[WARN\]:Skipped AppID:app3`))
				})
			})

			Context("when continuing on error", func() {
				BeforeEach(func() {
					policy = executor.ContinueOnError
				})

				It("deploys the remaining app ids", func() {
					Expect(tool.RunCallCount()).To(Equal(3))
					args, _ := tool.RunArgsForCall(2)
					Expect(args).To(ContainElement("app3"))
					Expect(output.Contents()).NotTo(ContainSubstring("Skipped AppID"))
				})
			})
		})
	})
})
